package provider_test

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/instantgame-oauth2/oauth2"
	"github.com/jrsteele09/instantgame-oauth2/provider"
	"github.com/jrsteele09/instantgame-oauth2/transport"
	"github.com/stretchr/testify/require"
)

var testConfig = provider.Config{
	ClientID:     "client-123",
	ClientSecret: "secret-456",
	RedirectURI:  "https://app.example.com/callback",
}

// cannedResponse is what a fake transport answers with.
type cannedResponse struct {
	status      int
	statusLine  string
	contentType string
	body        string
}

func (c cannedResponse) response(req *http.Request) *http.Response {
	status := c.statusLine
	if status == "" {
		status = http.StatusText(c.status)
	}
	contentType := c.contentType
	if contentType == "" {
		contentType = "application/json"
	}
	return &http.Response{
		StatusCode: c.status,
		Status:     strconv.Itoa(c.status) + " " + status,
		Header:     http.Header{"Content-Type": {contentType}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}
}

// recordingDoer answers every request with the same canned response and keeps
// the requests it saw.
type recordingDoer struct {
	mu       sync.Mutex
	canned   cannedResponse
	requests []*http.Request
	forms    []url.Values
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	form, _ := url.ParseQuery(string(body))

	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.forms = append(d.forms, form)
	d.mu.Unlock()

	return d.canned.response(req), nil
}

func (d *recordingDoer) lastForm(t *testing.T) url.Values {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.forms)
	return d.forms[len(d.forms)-1]
}

func (d *recordingDoer) lastRequest(t *testing.T) *http.Request {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.requests)
	return d.requests[len(d.requests)-1]
}

// clientFor wraps a Doer in an *http.Client.
func clientFor(d transport.Doer) *http.Client {
	return &http.Client{Transport: roundTripper(d.Do)}
}

type roundTripper func(*http.Request) (*http.Response, error)

func (f roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// asyncFor runs d through the async client.
func asyncFor(d transport.Doer) transport.AsyncDoer {
	return transport.NewAsyncClient(d)
}

func newProviders(t *testing.T, cfg provider.Config, d transport.Doer) (*provider.Provider, *provider.AsyncProvider) {
	t.Helper()
	p, err := provider.New(cfg, provider.WithHTTPClient(clientFor(d)))
	require.NoError(t, err)
	ap, err := provider.NewAsync(cfg, provider.WithAsyncTransport(asyncFor(d)))
	require.NoError(t, err)
	return p, ap
}

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("issuer-only-key"))
	require.NoError(t, err)
	return raw
}

func pinClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	orig := oauth2.NowTimeFunc
	oauth2.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { oauth2.NowTimeFunc = orig })
	return now
}

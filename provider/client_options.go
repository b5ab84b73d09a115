package provider

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Client option keys understood by the HTTP client builder.
const (
	ClientOptionTimeout = "timeout"
	ClientOptionProxy   = "proxy"
	ClientOptionVerify  = "verify"
)

func baseClientOptions() []string {
	return []string{ClientOptionTimeout, ClientOptionProxy}
}

// allowedClientOptions returns the option keys a caller may pass through to the
// HTTP client. The structured-error deployment also allows TLS verification control.
func allowedClientOptions(style ErrorStyle) []string {
	allowed := baseClientOptions()
	if style == ErrorStyleMessage {
		allowed = append(allowed, ClientOptionVerify)
	}
	return allowed
}

// newHTTPClient builds an *http.Client from the allowed subset of clientOptions.
//   - timeout: seconds, fractional allowed
//   - proxy: proxy URL
//   - verify: "true"/"false", or a path to a PEM CA bundle
func newHTTPClient(clientOptions map[string]string, allowed []string) (*http.Client, error) {
	client := &http.Client{}
	var tr *http.Transport

	transportFor := func() *http.Transport {
		if tr == nil {
			tr = http.DefaultTransport.(*http.Transport).Clone()
		}
		return tr
	}

	for key, value := range clientOptions {
		if !slices.Contains(allowed, key) {
			log.Debug().Str("option", key).Msg("ignoring client option not allowed by provider")
			continue
		}

		switch key {
		case ClientOptionTimeout:
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil || seconds < 0 {
				return nil, fmt.Errorf("%w: timeout %q", ErrInvalidClientOption, value)
			}
			client.Timeout = time.Duration(seconds * float64(time.Second))

		case ClientOptionProxy:
			proxyURL, err := url.Parse(value)
			if err != nil || proxyURL.Host == "" {
				return nil, fmt.Errorf("%w: proxy %q", ErrInvalidClientOption, value)
			}
			transportFor().Proxy = http.ProxyURL(proxyURL)

		case ClientOptionVerify:
			tlsConfig, err := verifyTLSConfig(value)
			if err != nil {
				return nil, err
			}
			transportFor().TLSClientConfig = tlsConfig
		}
	}

	if tr != nil {
		client.Transport = tr
	}
	return client, nil
}

// noRedirects returns a copy of client that hands 3xx responses back instead
// of following them, so the validator sees the redirect itself.
func noRedirects(client *http.Client) *http.Client {
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

func verifyTLSConfig(value string) (*tls.Config, error) {
	if verify, err := strconv.ParseBool(value); err == nil {
		if !verify {
			log.Warn().Msg("TLS certificate verification disabled for token requests")
		}
		return &tls.Config{InsecureSkipVerify: !verify}, nil //nolint:gosec // caller opted out
	}

	pem, err := os.ReadFile(value)
	if err != nil {
		return nil, fmt.Errorf("%w: verify %q: %v", ErrInvalidClientOption, value, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: verify %q: no certificates found", ErrInvalidClientOption, value)
	}
	return &tls.Config{RootCAs: pool}, nil
}

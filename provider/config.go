package provider

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/instantgame-oauth2/grant"
	"github.com/jrsteele09/instantgame-oauth2/token/jwt"
	"github.com/jrsteele09/instantgame-oauth2/transport"
)

const (
	// Name is the provider identifier.
	Name = "instantgame"

	DefaultWebURL = "https://instantgame.online"
	DefaultAPIURL = "https://api.instantgame.online/v1"

	authorizePath     = "/oauth/authorize"
	accessTokenPath   = "/oauth/access-token"
	resourceOwnerPath = "/profile"

	scopeSeparator = " "
)

// ErrorStyle selects how a rejected token request is turned into a ProviderError.
type ErrorStyle string

const (
	// ErrorStyleMessage reads the "message" field of a JSON error body.
	// Deployments using it also accept the "verify" client option.
	ErrorStyleMessage ErrorStyle = "message"

	// ErrorStyleReasonPhrase uses the reason phrase of the HTTP status line.
	ErrorStyleReasonPhrase ErrorStyle = "reason"
)

// Config holds the credentials and endpoints of one Instant Game Online client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// WebURL hosts the browser-facing authorize page. Defaults to DefaultWebURL.
	WebURL string
	// APIURL hosts the token and profile endpoints. Defaults to DefaultAPIURL.
	APIURL string

	// Scopes requested in the authorization redirect. Defaults to DefaultScopes().
	Scopes []string

	// ErrorStyle defaults to ErrorStyleMessage.
	ErrorStyle ErrorStyle
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return ErrMissingClientID
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return ErrMissingClientSecret
	}
	switch c.ErrorStyle {
	case "", ErrorStyleMessage, ErrorStyleReasonPhrase:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidErrorStyle, c.ErrorStyle)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.WebURL == "" {
		c.WebURL = DefaultWebURL
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.WebURL = strings.TrimRight(c.WebURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.ErrorStyle == "" {
		c.ErrorStyle = ErrorStyleMessage
	}
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes()
	} else {
		c.Scopes = append([]string(nil), c.Scopes...)
	}
	return c
}

// DefaultScopes are the scopes needed to read the resource owner's profile.
func DefaultScopes() []string {
	return []string{"profile"}
}

// DefaultHeaders are sent with every token request.
func DefaultHeaders() http.Header {
	return http.Header{"Accept": {"application/json"}}
}

// JoinScopes serializes scopes the way the service expects them.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, scopeSeparator)
}

// Option configures a provider.
type Option func(*options)

type options struct {
	httpClient     *http.Client
	clientOptions  map[string]string
	asyncTransport transport.AsyncDoer
	validator      ResponseValidator
	grants         *grant.Factory
	decoder        jwt.ClaimsDecoder
	webURL         string
	apiURL         string
}

// WithHTTPClient sets the HTTP client used for token requests.
// It takes precedence over WithClientOptions. Redirects are never followed.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithClientOptions configures the HTTP client from option keys such as
// "timeout", "proxy" and "verify". Keys the provider does not allow are ignored.
func WithClientOptions(clientOptions map[string]string) Option {
	return func(o *options) {
		o.clientOptions = clientOptions
	}
}

// WithAsyncTransport sets the non-blocking transport of an AsyncProvider.
func WithAsyncTransport(t transport.AsyncDoer) Option {
	return func(o *options) {
		o.asyncTransport = t
	}
}

// WithValidator replaces the validator chosen by Config.ErrorStyle.
func WithValidator(v ResponseValidator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithGrantFactory sets the factory used to resolve grants by name.
func WithGrantFactory(f *grant.Factory) Option {
	return func(o *options) {
		o.grants = f
	}
}

// WithClaimsDecoder sets the decoder used to read scopes from access tokens.
func WithClaimsDecoder(d jwt.ClaimsDecoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithWebURL overrides the authorize host.
func WithWebURL(u string) Option {
	return func(o *options) {
		o.webURL = u
	}
}

// WithAPIURL overrides the token and profile host.
func WithAPIURL(u string) Option {
	return func(o *options) {
		o.apiURL = u
	}
}

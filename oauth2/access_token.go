package oauth2

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/internal/utils"
	xoauth2 "golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ErrMissingAccessToken is returned when a token response carries no access_token.
var ErrMissingAccessToken = errors.New("required option not passed: access_token")

// AccessToken is the normalized result of a successful token exchange.
// It is the Go shape of the RFC 6749 token endpoint response as returned by the service.
type AccessToken struct {
	// AccessToken is the bearer credential. Never empty.
	// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."
	AccessToken string

	// ExpiresIn is the lifetime in seconds reported by the service, if any.
	ExpiresIn *int

	// Expires is the absolute expiry derived from expires_in (or the service's
	// "expires" timestamp). Zero when the service reported neither.
	Expires time.Time

	// RefreshToken is present only when the service issued one.
	RefreshToken *string

	// Scopes are read from the "scopes" claim of the access token itself.
	// Nil when the access token is not a JWT or carries no such claim.
	Scopes []string

	// Values holds the complete raw token response.
	Values map[string]any
}

// NewAccessToken builds an AccessToken from a parsed token response.
// The response must contain a non-empty access_token.
func NewAccessToken(response map[string]any) (*AccessToken, error) {
	raw, ok := response[FieldAccessToken]
	if !ok {
		return nil, ErrMissingAccessToken
	}
	accessToken, ok := raw.(string)
	if !ok || strings.TrimSpace(accessToken) == "" {
		return nil, ErrMissingAccessToken
	}

	t := &AccessToken{
		AccessToken: accessToken,
		Values:      response,
	}

	if v, ok := response[FieldExpiresIn]; ok && v != nil {
		expiresIn, err := utils.ToInt(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", FieldExpiresIn, err)
		}
		t.ExpiresIn = &expiresIn
		t.Expires = NowTimeFunc().Add(time.Duration(expiresIn) * time.Second)
	} else if v, ok := response[FieldExpires]; ok && v != nil {
		expires, err := utils.ToInt(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", FieldExpires, err)
		}
		t.Expires = time.Unix(int64(expires), 0)
	}

	if v, ok := response[FieldRefreshToken].(string); ok && v != "" {
		t.RefreshToken = utils.Ptr(v)
	}

	return t, nil
}

// HasExpired reports whether the token carries an expiry that has passed.
// Tokens without an expiry never expire.
func (t *AccessToken) HasExpired() bool {
	if t.Expires.IsZero() {
		return false
	}
	return !NowTimeFunc().Before(t.Expires)
}

// Token converts to a golang.org/x/oauth2 token so it can feed a TokenSource
// or set an Authorization header.
func (t *AccessToken) Token() *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: utils.Value(t.RefreshToken),
		Expiry:       t.Expires,
	}
	if t.ExpiresIn != nil {
		tok.ExpiresIn = int64(*t.ExpiresIn)
	}
	return tok.WithExtra(t.Values)
}

func (t *AccessToken) String() string {
	return t.AccessToken
}

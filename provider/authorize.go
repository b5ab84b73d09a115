package provider

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/jrsteele09/instantgame-oauth2/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// Endpoint describes the service for golang.org/x/oauth2.
func (e *exchanger) Endpoint() xoauth2.Endpoint {
	return xoauth2.Endpoint{
		AuthURL:   e.AuthorizationURL(),
		TokenURL:  e.TokenURL(nil),
		AuthStyle: xoauth2.AuthStyleInParams,
	}
}

// OAuth2Config returns an equivalent golang.org/x/oauth2 configuration.
func (e *exchanger) OAuth2Config() *xoauth2.Config {
	return &xoauth2.Config{
		ClientID:     e.cfg.ClientID,
		ClientSecret: e.cfg.ClientSecret,
		RedirectURL:  e.cfg.RedirectURI,
		Scopes:       e.Scopes(),
		Endpoint:     e.Endpoint(),
	}
}

// AuthCodeURL builds the authorization redirect and returns it with the state
// it carries. An empty state is replaced with a random one, which the caller
// must keep to check the callback.
func (e *exchanger) AuthCodeURL(state string, opts ...xoauth2.AuthCodeOption) (string, string) {
	if state == "" {
		state = randomState()
	}

	opts = append([]xoauth2.AuthCodeOption{
		xoauth2.SetAuthURLParam("approval_prompt", "auto"),
		xoauth2.SetAuthURLParam("scope", JoinScopes(e.cfg.Scopes)),
	}, opts...)

	return e.OAuth2Config().AuthCodeURL(state, opts...), state
}

// AuthorizationHeaders are the headers that authenticate a request with token.
func (e *exchanger) AuthorizationHeaders(token *oauth2.AccessToken) http.Header {
	return http.Header{"Authorization": {"Bearer " + token.AccessToken}}
}

// AuthenticatedRequest builds a request to the service carrying token as a bearer credential.
func (e *exchanger) AuthenticatedRequest(ctx context.Context, method, url string, token *oauth2.AccessToken, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range DefaultHeaders() {
		req.Header[k] = v
	}
	token.Token().SetAuthHeader(req)
	return req, nil
}

func randomState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

package grant

import (
	"net/url"

	"github.com/jrsteele09/instantgame-oauth2/oauth2"
)

// AuthorizationCode is the authorization_code grant. It requires "code".
type AuthorizationCode struct{}

var _ Grant = AuthorizationCode{}

func (AuthorizationCode) Name() string {
	return oauth2.AuthorizationCodeGrant.String()
}

func (g AuthorizationCode) PrepareRequestParameters(base url.Values, opts Options) (url.Values, error) {
	return prepare(g.Name(), []string{"code"}, base, opts)
}

package grant_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/instantgame-oauth2/grant"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationCode_PrepareRequestParameters(t *testing.T) {
	g := grant.AuthorizationCode{}
	base := url.Values{
		"client_id":     {"client"},
		"client_secret": {"secret"},
		"redirect_uri":  {"https://app.example.com/callback"},
	}

	t.Run("merges code and grant type", func(t *testing.T) {
		params, err := g.PrepareRequestParameters(base, grant.Options{"code": "abc"})
		require.NoError(t, err)
		require.Equal(t, "authorization_code", params.Get("grant_type"))
		require.Equal(t, "abc", params.Get("code"))
		require.Equal(t, "client", params.Get("client_id"))
		require.Equal(t, "secret", params.Get("client_secret"))
		require.Equal(t, "https://app.example.com/callback", params.Get("redirect_uri"))
	})

	t.Run("options override base", func(t *testing.T) {
		params, err := g.PrepareRequestParameters(base, grant.Options{"code": "abc", "redirect_uri": "https://other/cb"})
		require.NoError(t, err)
		require.Equal(t, "https://other/cb", params.Get("redirect_uri"))
	})

	t.Run("base is not mutated", func(t *testing.T) {
		_, err := g.PrepareRequestParameters(base, grant.Options{"code": "abc"})
		require.NoError(t, err)
		require.Empty(t, base.Get("code"))
		require.Empty(t, base.Get("grant_type"))
	})

	t.Run("missing code", func(t *testing.T) {
		_, err := g.PrepareRequestParameters(base, nil)
		require.ErrorIs(t, err, grant.ErrMissingParameter)
		require.Contains(t, err.Error(), "code")
	})
}

func TestFactory(t *testing.T) {
	f := grant.NewFactory()

	t.Run("authorization code registered", func(t *testing.T) {
		g, err := f.Get("authorization_code")
		require.NoError(t, err)
		require.Equal(t, grant.AuthorizationCode{}, g)
	})

	t.Run("unsupported grant", func(t *testing.T) {
		_, err := f.Get("client_credentials")
		require.ErrorIs(t, err, grant.ErrUnsupportedGrant)
	})

	t.Run("verify nil", func(t *testing.T) {
		_, err := grant.Verify(nil)
		require.ErrorIs(t, err, grant.ErrInvalidGrant)
	})
}

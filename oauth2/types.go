package oauth2

// GrantType represents the OAuth 2.0 grant type sent to the token endpoint as grant_type.
// Determines which parameters the token request must carry.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Used in: Authorization Code Flow
	// Token request includes: grant_type, code, client_id, client_secret, redirect_uri
	// Returns: access_token, expires_in, refresh_token (if issued)
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// Standard token endpoint response fields read by the adapter.
const (
	FieldAccessToken  = "access_token"
	FieldExpiresIn    = "expires_in"
	FieldExpires      = "expires"
	FieldRefreshToken = "refresh_token"
	FieldScopes       = "scopes"
)

func (g GrantType) String() string {
	return string(g)
}

package provider

import (
	"net/url"

	"github.com/jrsteele09/instantgame-oauth2/oauth2"
)

// AuthorizationURL is the page the resource owner is sent to, without query.
func (e *exchanger) AuthorizationURL() string {
	return e.cfg.WebURL + authorizePath
}

// TokenURL is the access token endpoint. params are not used by this service.
func (e *exchanger) TokenURL(_ url.Values) string {
	return e.cfg.APIURL + accessTokenPath
}

// ResourceOwnerDetailsURL is the profile endpoint. token is not used by this service.
func (e *exchanger) ResourceOwnerDetailsURL(_ *oauth2.AccessToken) string {
	return e.cfg.APIURL + resourceOwnerPath
}

func (e *exchanger) WebURL() string {
	return e.cfg.WebURL
}

func (e *exchanger) APIURL() string {
	return e.cfg.APIURL
}

// Scopes are the scopes requested in the authorization redirect.
func (e *exchanger) Scopes() []string {
	return append([]string(nil), e.cfg.Scopes...)
}

// AllowedClientOptions are the client option keys accepted by WithClientOptions.
func (e *exchanger) AllowedClientOptions() []string {
	return allowedClientOptions(e.cfg.ErrorStyle)
}

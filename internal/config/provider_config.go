package config

import "strings"

type Provider struct {
	ClientID     string `env:"IGO_CLIENT_ID,required"`
	ClientSecret string `env:"IGO_CLIENT_SECRET,required"`
	RedirectURI  string `env:"IGO_REDIRECT_URI,default=http://localhost:8080/callback"`
	WebURL       string `env:"IGO_WEB_URL"`
	APIURL       string `env:"IGO_API_URL"`
	Scopes       string `env:"IGO_SCOPES"`
	ErrorStyle   string `env:"IGO_ERROR_STYLE,default=message"`
}

var _ ProviderConfig = Provider{}

func (p Provider) GetClientID() string {
	return p.ClientID
}

func (p Provider) GetClientSecret() string {
	return p.ClientSecret
}

func (p Provider) GetRedirectURI() string {
	return p.RedirectURI
}

// GetWebURL is empty unless overridden; the provider then uses its default host.
func (p Provider) GetWebURL() string {
	return p.WebURL
}

func (p Provider) GetAPIURL() string {
	return p.APIURL
}

// GetScopes accepts space or comma separated scopes.
func (p Provider) GetScopes() []string {
	return strings.FieldsFunc(p.Scopes, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

func (p Provider) GetErrorStyle() string {
	return p.ErrorStyle
}

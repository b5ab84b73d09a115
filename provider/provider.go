// Package provider is the OAuth2 client adapter for Instant Game Online.
//
// Provider exchanges grants for access tokens synchronously; AsyncProvider does
// the same over an injected non-blocking transport. Both resolve the same
// endpoints, send the same requests and extract tokens identically.
package provider

import (
	"context"

	"github.com/jrsteele09/instantgame-oauth2/grant"
	"github.com/jrsteele09/instantgame-oauth2/oauth2"
)

// Provider performs blocking token exchanges.
type Provider struct {
	*exchanger
}

var _ TokenExchanger = (*Provider)(nil)

// New creates a blocking provider. ClientID and ClientSecret are required.
func New(cfg Config, opts ...Option) (*Provider, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e, err := newExchanger(cfg, &o)
	if err != nil {
		return nil, err
	}
	return &Provider{exchanger: e}, nil
}

// AccessToken exchanges g for an access token. Transport errors are returned
// unchanged; a non-200 answer is a *ProviderError.
func (p *Provider) AccessToken(ctx context.Context, g grant.Grant, opts grant.Options) (*oauth2.AccessToken, error) {
	x, err := p.build(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(x.req)
	if err != nil {
		return nil, err
	}
	return p.finish(x, resp)
}

// ExchangeCode exchanges an authorization code using the authorization_code grant.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (*oauth2.AccessToken, error) {
	return p.AccessToken(ctx, grant.AuthorizationCode{}, grant.Options{"code": code})
}

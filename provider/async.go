package provider

import (
	"context"
	"net/http"
	"reflect"
	"sync/atomic"

	"github.com/jrsteele09/instantgame-oauth2/grant"
	"github.com/jrsteele09/instantgame-oauth2/oauth2"
	"github.com/jrsteele09/instantgame-oauth2/transport"
)

// AsyncProvider performs token exchanges over a non-blocking transport.
// The transport must not be swapped while requests are outstanding.
type AsyncProvider struct {
	*exchanger
	transport atomic.Pointer[asyncTransport]
}

type asyncTransport struct {
	doer transport.AsyncDoer
}

var _ TokenExchanger = (*AsyncProvider)(nil)

// NewAsync creates a non-blocking provider. Without WithAsyncTransport it
// sends requests on the configured HTTP client from a goroutine per request.
func NewAsync(cfg Config, opts ...Option) (*AsyncProvider, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e, err := newExchanger(cfg, &o)
	if err != nil {
		return nil, err
	}

	p := &AsyncProvider{exchanger: e}
	if o.asyncTransport != nil {
		p.SetTransport(o.asyncTransport)
	} else {
		p.SetTransport(transport.NewAsyncClient(e.httpClient))
	}
	return p, nil
}

// SetTransport replaces the async transport. Passing nil, including a typed
// nil pointer, makes every later exchange fail with ErrNoTransport.
func (p *AsyncProvider) SetTransport(t transport.AsyncDoer) *AsyncProvider {
	if isNilTransport(t) {
		t = nil
	}
	p.transport.Store(&asyncTransport{doer: t})
	return p
}

func isNilTransport(t transport.AsyncDoer) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (p *AsyncProvider) Transport() transport.AsyncDoer {
	if t := p.transport.Load(); t != nil {
		return t.doer
	}
	return nil
}

// AccessTokenAsync starts exchanging g and returns immediately. The future
// resolves with the token, or rejects with a *ProviderError, a malformed
// response error or the transport's own error.
func (p *AsyncProvider) AccessTokenAsync(ctx context.Context, g grant.Grant, opts grant.Options) *transport.Future[*oauth2.AccessToken] {
	doer := p.Transport()
	if doer == nil {
		return transport.Rejected[*oauth2.AccessToken](ErrNoTransport)
	}

	x, err := p.build(ctx, g, opts)
	if err != nil {
		return transport.Rejected[*oauth2.AccessToken](err)
	}

	return transport.Then(doer.Send(ctx, x.req), func(resp *http.Response) (*oauth2.AccessToken, error) {
		return p.finish(x, resp)
	})
}

// AccessToken exchanges g and waits for the result.
func (p *AsyncProvider) AccessToken(ctx context.Context, g grant.Grant, opts grant.Options) (*oauth2.AccessToken, error) {
	return p.AccessTokenAsync(ctx, g, opts).Await(ctx)
}

// ExchangeCodeAsync exchanges an authorization code using the authorization_code grant.
func (p *AsyncProvider) ExchangeCodeAsync(ctx context.Context, code string) *transport.Future[*oauth2.AccessToken] {
	return p.AccessTokenAsync(ctx, grant.AuthorizationCode{}, grant.Options{"code": code})
}

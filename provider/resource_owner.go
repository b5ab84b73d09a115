package provider

import (
	"context"

	"github.com/jrsteele09/instantgame-oauth2/oauth2"
)

// ResourceOwner is the end user a token was issued for.
type ResourceOwner interface {
	ID() string
	ToMap() map[string]any
}

// ResourceOwner always fails with ErrNotImplemented: the service's profile
// response has no agreed schema yet.
func (e *exchanger) ResourceOwner(_ context.Context, _ *oauth2.AccessToken) (ResourceOwner, error) {
	return nil, ErrNotImplemented
}

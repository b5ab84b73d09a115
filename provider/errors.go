package provider

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors, returned by New and NewAsync.
	ErrMissingClientID     = errors.New("instantgame: missing client ID")
	ErrMissingClientSecret = errors.New("instantgame: missing client secret")
	ErrInvalidClientOption = errors.New("instantgame: invalid client option")
	ErrInvalidErrorStyle   = errors.New("instantgame: invalid error style")

	// ErrProviderResponse matches every *ProviderError via errors.Is.
	ErrProviderResponse = errors.New("instantgame: provider rejected the request")

	// ErrMalformedResponse is returned when a token response cannot be parsed
	// or carries no access_token.
	ErrMalformedResponse = errors.New("instantgame: malformed token response")

	// ErrNotImplemented is returned by resource owner lookups; the profile
	// response of the service has no agreed shape.
	ErrNotImplemented = errors.New("instantgame: resource owner lookup has not been implemented")

	// ErrNoTransport is returned by the async provider when its transport was cleared.
	ErrNoTransport = errors.New("instantgame: no async transport configured")
)

// ProviderError is a non-200 answer from the identity service.
type ProviderError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("instantgame: %s (status %d)", e.Message, e.StatusCode)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderResponse
}

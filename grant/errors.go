package grant

import "errors"

var (
	ErrMissingParameter = errors.New("required parameter not passed")
	ErrUnsupportedGrant = errors.New("unsupported grant type")
	ErrInvalidGrant     = errors.New("grant cannot be nil")
)

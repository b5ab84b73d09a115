// Package grant holds the parameter-preparation rules of OAuth2 grant types.
package grant

import (
	"fmt"
	"net/url"
)

// Options are caller supplied token request parameters, e.g. {"code": "..."}.
type Options map[string]string

// Grant encapsulates the token request rules of one OAuth2 flow variant.
type Grant interface {
	// Name is the value sent as grant_type.
	Name() string

	// PrepareRequestParameters merges the caller options over the base
	// parameters, adds grant_type and checks the grant's required parameters.
	PrepareRequestParameters(base url.Values, opts Options) (url.Values, error)
}

// prepare implements the shared merge: base first, grant_type, then options.
func prepare(name string, required []string, base url.Values, opts Options) (url.Values, error) {
	params := url.Values{}
	for k, v := range base {
		params[k] = append([]string(nil), v...)
	}
	params.Set("grant_type", name)
	for k, v := range opts {
		params.Set(k, v)
	}

	for _, r := range required {
		if params.Get(r) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingParameter, r)
		}
	}
	return params, nil
}

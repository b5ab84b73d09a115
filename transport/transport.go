// Package transport holds the HTTP collaborators of the provider: the blocking
// and non-blocking request senders and the token response parser.
package transport

import "net/http"

// Doer sends one HTTP request and blocks until the response arrives.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

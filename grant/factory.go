package grant

import (
	"fmt"
	"sync"
)

// Factory resolves grants by their grant_type name.
// Only authorization_code is registered by default.
type Factory struct {
	mu     sync.RWMutex
	grants map[string]Grant
}

func NewFactory() *Factory {
	f := &Factory{grants: make(map[string]Grant)}
	f.Register(AuthorizationCode{})
	return f
}

// Register adds or replaces a grant under its own name.
func (f *Factory) Register(g Grant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grants[g.Name()] = g
}

// Get returns the grant registered under name.
func (f *Factory) Get(name string) (Grant, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	g, ok := f.grants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGrant, name)
	}
	return g, nil
}

// Verify checks that g is usable.
func Verify(g Grant) (Grant, error) {
	if g == nil {
		return nil, ErrInvalidGrant
	}
	return g, nil
}

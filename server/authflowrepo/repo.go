package authflowrepo

import "time"

// AuthFlowState is what the login server remembers between redirecting the
// browser to the authorize page and receiving the callback.
type AuthFlowState struct {
	ReturnURL string
	CreatedAt time.Time
}

// Expired reports whether the state is older than ttl at now.
func (s *AuthFlowState) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.CreatedAt) > ttl
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
}

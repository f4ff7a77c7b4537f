package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StateStore hands out one-time OAuth state values.
type StateStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStateStore creates a store whose states expire after ttl.
func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Issue returns a fresh state value.
func (s *StateStore) Issue() string {
	state := uuid.NewString()
	s.cache.Set(state, 0, s.ttl)
	return state
}

// Consume reports whether state was issued, is unexpired and has not been
// consumed before.
func (s *StateStore) Consume(state string) bool {
	if state == "" {
		return false
	}
	// IncrementInt is atomic, so only the first caller observes 1.
	n, err := s.cache.IncrementInt(state, 1)
	if err != nil {
		return false
	}
	s.cache.Delete(state)
	return n == 1
}

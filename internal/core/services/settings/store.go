package settings

import (
	"sync"
	"sync/atomic"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// Store holds the process-wide upstream settings. Readers get an immutable
// snapshot via an atomic pointer; writers serialize on a mutex so concurrent
// partial updates cannot lose fields to each other.
type Store struct {
	current atomic.Pointer[domain.Settings]
	mu      sync.Mutex
}

// NewStore creates a store seeded with the given settings.
func NewStore(initial domain.Settings) *Store {
	s := &Store{}
	s.current.Store(&initial)
	return s
}

// Snapshot returns the current settings snapshot.
func (s *Store) Snapshot() domain.Settings {
	return *s.current.Load()
}

// Update merges the patch into the current snapshot and publishes the result.
func (s *Store) Update(patch domain.SettingsPatch) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.current.Load().Merge(patch)
	s.current.Store(&merged)
	return merged
}

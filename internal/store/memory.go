package store

import (
	"errors"
	"sync"

	"github.com/i474232898/climacrave/internal/weather"
)

var (
	// ErrNotFound is returned when no weather has been fetched yet.
	ErrNotFound = errors.New("no weather data available")
)

// MemoryStore is a concurrency-safe holder for the current weather snapshot.
// Only the latest snapshot is kept.
type MemoryStore struct {
	mu sync.RWMutex

	current *weather.Snapshot
	loc     weather.Location // where current was fetched
	pending int // fetches started but not finished
	lastErr string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// BeginFetch marks a fetch as outstanding and clears the previous error.
func (s *MemoryStore) BeginFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending++
	s.lastErr = ""
}

// CompleteFetch replaces the current snapshot and the location it was
// fetched for.
func (s *MemoryStore) CompleteFetch(snapshot weather.Snapshot, loc weather.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &snapshot
	s.loc = loc
	s.lastErr = ""
	s.done()
}

// FailFetch records an error message; the current snapshot is left untouched.
func (s *MemoryStore) FailFetch(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = message
	s.done()
}

func (s *MemoryStore) done() {
	if s.pending > 0 {
		s.pending--
	}
}

// GetLatest returns the current snapshot.
func (s *MemoryStore) GetLatest() (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return weather.Snapshot{}, ErrNotFound
	}
	return *s.current, nil
}

// LastLocation returns the location of the current snapshot.
func (s *MemoryStore) LastLocation() (weather.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return weather.Location{}, false
	}
	return s.loc, true
}

// State returns a copy of the current view state.
func (s *MemoryStore) State() weather.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := weather.State{
		Loading: s.pending > 0,
		Error:   s.lastErr,
	}
	if s.current != nil {
		snap := *s.current
		st.Weather = &snap
	}
	return st
}

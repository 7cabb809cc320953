package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
)

// LiveSnapshot is the latest set of in-progress matches seen by the poller.
type LiveSnapshot struct {
	Matches   []matches.Match `json:"live"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MemoryStore keeps a thread-safe live snapshot in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[string]matches.Match
	order   []string
	updated time.Time
	set     bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: make(map[string]matches.Match),
	}
}

// Live returns a copy of the current snapshot. ok is false until the first SetLive.
func (s *MemoryStore) Live() (LiveSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return LiveSnapshot{}, false
	}
	result := make([]matches.Match, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.matches[id])
	}
	return LiveSnapshot{Matches: result, UpdatedAt: s.updated}, true
}

// LiveMatch retrieves a live match by ID.
func (s *MemoryStore) LiveMatch(id string) (matches.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	return m, ok
}

// SetLive replaces the existing snapshot, keeping upstream order. Later duplicates of an id win.
func (s *MemoryStore) SetLive(live []matches.Match, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = make(map[string]matches.Match, len(live))
	s.order = make([]string, 0, len(live))
	for _, m := range live {
		if _, seen := s.matches[m.ID]; !seen {
			s.order = append(s.order, m.ID)
		}
		s.matches[m.ID] = m
	}
	s.updated = at
	s.set = true
}

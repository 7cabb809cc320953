// Package cache holds response cache backends for the caching source.
package cache

import (
	"context"
	"sync"
	"time"
)

// sweepInterval spaces the expired-entry sweeps that Set runs.
const sweepInterval = time.Minute

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache. Expired entries are dropped on read, and Set sweeps the
// rest at most once per sweepInterval so keys that are never read again do not accumulate.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns a copy of the stored value while it is fresh.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores value for ttl. Non-positive TTLs are ignored.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = ctx
	if ttl <= 0 {
		return nil
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweepLocked(now)
	}
	m.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *Memory) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

// Purge drops every entry.
func (m *Memory) Purge(ctx context.Context) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	return nil
}

// Len reports the number of stored entries, fresh or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

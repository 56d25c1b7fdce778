package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache with lazy expiry. Safe for concurrent
// use. Expired entries are evicted at read time; Cleanup can be called for
// memory hygiene but is not required for correctness.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// Stats is a point-in-time summary of cache occupancy.
type Stats struct {
	TotalEntries   int
	ActiveEntries  int
	ExpiredEntries int
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the entry for key, or ok=false when absent or expired.
// An expired entry is evicted on the spot.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, ok := m.entries[key]; ok && m.now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any existing entry and resetting
// its TTL clock from the call time.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Has reports whether key exists and is not expired.
func (m *Memory) Has(ctx context.Context, key string) bool {
	_, ok := m.Get(ctx, key)
	return ok
}

// Delete removes key. Returns true if an entry was present.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok
}

// Clear drops all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Cleanup evicts all expired entries.
func (m *Memory) Cleanup() {
	now := m.now()
	m.mu.Lock()
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
}

// Stats counts active and expired entries.
func (m *Memory) Stats() Stats {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{TotalEntries: len(m.entries)}
	for _, e := range m.entries {
		if now.After(e.expiresAt) {
			s.ExpiredEntries++
		} else {
			s.ActiveEntries++
		}
	}
	return s
}

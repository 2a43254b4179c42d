// Package ratelimit provides the client-identity request-count store
// used by the API rate limiter. The store is an injected abstraction
// so a single instance can run in memory while multi-instance
// deployments swap in an external store.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of one counted request.
type Result struct {
	Count int
	Reset time.Time
}

// Store counts requests per client identity within a fixed window.
// Increment must be an atomic read-increment-compare: independent
// requests from the same client may execute concurrently.
type Store interface {
	Increment(key string, window time.Duration) Result
}

// purgeThreshold bounds memory on long-running instances: expired
// entries are swept once the map grows past it.
const purgeThreshold = 10000

type entry struct {
	count int
	reset time.Time
}

// MemoryStore is the single-instance in-memory Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry)}
}

// Increment counts one request for key, starting a fresh window when
// the previous one has elapsed.
func (s *MemoryStore) Increment(key string, window time.Duration) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	e, ok := s.entries[key]
	if !ok || now.After(e.reset) {
		e = &entry{reset: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	if len(s.entries) > purgeThreshold {
		s.purge(now)
	}

	return Result{Count: e.count, Reset: e.reset}
}

// purge removes expired windows. Caller holds the lock.
func (s *MemoryStore) purge(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.reset) {
			delete(s.entries, key)
		}
	}
}

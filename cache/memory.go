package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an unbounded in-memory cache. Entries only leave through
// Delete or, when the policy sets a TTL, lazily on expiry.
type MemoryCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[V]
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time // zero means never
}

// NewMemoryCache creates an in-memory cache honoring policy.TTL.
// policy.MaxEntries is ignored; use NewCache or NewBoundedCache for a bound.
func NewMemoryCache[V any](policy Policy) *MemoryCache[V] {
	return &MemoryCache[V]{
		entries: make(map[string]memoryEntry[V]),
		ttl:     policy.TTL,
		now:     time.Now,
	}
}

// Get retrieves a value. Returns (zero, false) on miss or expiry.
func (c *MemoryCache[V]) Get(_ context.Context, key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if current, ok := c.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}

	return entry.value, true
}

// Set stores a value.
func (c *MemoryCache[V]) Set(_ context.Context, key string, value V) error {
	entry := memoryEntry[V]{value: value}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (c *MemoryCache[V]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, including expired ones not yet
// collected.
func (c *MemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache[int] = (*MemoryCache[int])(nil)

package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// noExpiry stands in for "never" since sturdyc requires a positive TTL.
const noExpiry = 100 * 365 * 24 * time.Hour

// BoundedCache is a size-limited cache backed by sturdyc. When a shard is
// full, sturdyc evicts Policy.EvictionPercentage of its entries, soonest to
// expire first.
type BoundedCache[V any] struct {
	client *sturdyc.Client[V]
}

// NewBoundedCache creates a BoundedCache. policy.MaxEntries must be positive.
func NewBoundedCache[V any](policy Policy) (*BoundedCache[V], error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if !policy.Bounded() {
		return nil, ErrInvalidPolicy
	}
	policy = policy.withDefaults()

	ttl := policy.TTL
	if ttl == 0 {
		ttl = noExpiry
	}

	client := sturdyc.New[V](
		policy.MaxEntries,
		policy.Shards,
		ttl,
		policy.EvictionPercentage,
	)
	return &BoundedCache[V]{client: client}, nil
}

// Get retrieves a value. Returns (zero, false) on miss or expiry.
func (c *BoundedCache[V]) Get(_ context.Context, key string) (V, bool) {
	return c.client.Get(key)
}

// Set stores a value, evicting older entries when the cache is full.
func (c *BoundedCache[V]) Set(_ context.Context, key string, value V) error {
	c.client.Set(key, value)
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (c *BoundedCache[V]) Delete(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// Len reports the number of stored entries.
func (c *BoundedCache[V]) Len() int {
	return c.client.Size()
}

var _ Cache[int] = (*BoundedCache[int])(nil)

package cache

import (
	"fmt"
	"time"
)

// Policy configures how long memoized results live and how many are kept.
type Policy struct {
	// MaxEntries bounds the number of stored results. Zero means unbounded.
	MaxEntries int

	// TTL expires entries after the given duration. Zero means never.
	TTL time.Duration

	// Shards splits a bounded cache for concurrent access.
	// Default: 1 below 1024 entries, 16 otherwise
	Shards int

	// EvictionPercentage is the share of a full shard evicted to make room.
	// Default: 10
	EvictionPercentage int
}

// UnboundedPolicy keeps every result forever.
func UnboundedPolicy() Policy {
	return Policy{}
}

// DefaultPolicy bounds the cache to 10,000 entries without expiry.
func DefaultPolicy() Policy {
	return Policy{
		MaxEntries:         10_000,
		Shards:             16,
		EvictionPercentage: 10,
	}
}

// Validate reports whether the policy values are usable.
func (p Policy) Validate() error {
	switch {
	case p.MaxEntries < 0:
		return fmt.Errorf("%w: MaxEntries must not be negative", ErrInvalidPolicy)
	case p.TTL < 0:
		return fmt.Errorf("%w: TTL must not be negative", ErrInvalidPolicy)
	case p.Shards < 0:
		return fmt.Errorf("%w: Shards must not be negative", ErrInvalidPolicy)
	case p.EvictionPercentage < 0 || p.EvictionPercentage > 100:
		return fmt.Errorf("%w: EvictionPercentage must be between 0 and 100", ErrInvalidPolicy)
	case p.MaxEntries > 0 && p.Shards > p.MaxEntries:
		return fmt.Errorf("%w: Shards must not exceed MaxEntries", ErrInvalidPolicy)
	}
	return nil
}

// Bounded reports whether the policy limits the number of entries.
func (p Policy) Bounded() bool {
	return p.MaxEntries > 0
}

// withDefaults fills zero-valued bounded-cache settings.
func (p Policy) withDefaults() Policy {
	if p.Shards == 0 {
		p.Shards = 1
		if p.MaxEntries >= 1024 {
			p.Shards = 16
		}
	}
	if p.EvictionPercentage == 0 {
		p.EvictionPercentage = 10
	}
	return p
}

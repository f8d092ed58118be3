package cache

import (
	"context"
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache      = errors.New("cache: cache is nil")
	ErrInvalidKey    = errors.New("cache: key is invalid")
	ErrKeyTooLong    = errors.New("cache: key exceeds max length")
	ErrUnhashableKey = errors.New("cache: input cannot be used as a cache key")
	ErrInvalidPolicy = errors.New("cache: policy is invalid")
)

// Cache stores memoized results of type V.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (zero, false) on miss.
type Cache[V any] interface {
	// Get retrieves a stored value.
	Get(ctx context.Context, key string) (V, bool)

	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value V) error

	// Delete removes a value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Len reports the number of stored entries.
	Len() int
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// NewCache returns the Cache implementation matching policy: an unbounded
// MemoryCache when MaxEntries is zero, a BoundedCache otherwise.
func NewCache[V any](policy Policy) (Cache[V], error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if policy.MaxEntries == 0 {
		return NewMemoryCache[V](policy), nil
	}
	return NewBoundedCache[V](policy)
}

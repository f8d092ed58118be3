package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewBoundedCache_RequiresBound(t *testing.T) {
	if _, err := NewBoundedCache[int](UnboundedPolicy()); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("NewBoundedCache(unbounded) error = %v, want ErrInvalidPolicy", err)
	}
}

func TestBoundedCache_GetSetDelete(t *testing.T) {
	c, err := NewBoundedCache[string](Policy{MaxEntries: 16})
	if err != nil {
		t.Fatalf("NewBoundedCache() error = %v", err)
	}
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	_ = c.Set(ctx, "k", "v")
	if got, ok := c.Get(ctx, "k"); !ok || got != "v" {
		t.Errorf("Get(k) = %q, %v; want v, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	_ = c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get(k) after Delete reported a hit")
	}
}

func TestBoundedCache_StaysWithinBound(t *testing.T) {
	const maxEntries = 8
	c, err := NewBoundedCache[int](Policy{MaxEntries: maxEntries, EvictionPercentage: 100})
	if err != nil {
		t.Fatalf("NewBoundedCache() error = %v", err)
	}
	ctx := context.Background()

	for i := range 10 * maxEntries {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), i)
	}

	if n := c.Len(); n > maxEntries {
		t.Errorf("Len() = %d, want <= %d", n, maxEntries)
	}
}

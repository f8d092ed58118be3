package cache

import "strings"

// SkipRule reports whether an operation should bypass memoization.
// It is consulted once, when the operation is wrapped.
type SkipRule func(operation string, tags []string) bool

// UnsafeTags are tags that indicate an operation has side effects and should not be memoized.
var UnsafeTags = []string{"write", "danger", "unsafe", "mutation", "delete"}

// DefaultSkipRule skips operations carrying one of UnsafeTags.
// Tag matching is case-insensitive.
func DefaultSkipRule(_ string, tags []string) bool {
	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		for _, unsafe := range UnsafeTags {
			if tagLower == unsafe {
				return true
			}
		}
	}
	return false
}

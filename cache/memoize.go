package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/tooldecor/op"
)

// Stats reports memoizer activity. Hits counts every call answered without
// running the operation, including callers that shared a concurrent miss.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Memoizer caches the results of one operation.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent misses on the same key
//     run the operation once and share its result. A caller whose context
//     ends stops waiting with ctx.Err() without failing the other callers.
//   - Errors: errors from the operation are returned and never cached. Key
//     derivation failures are returned before the operation runs.
type Memoizer[In, Out any] struct {
	cache  Cache[Out]
	keyer  Keyer
	skip   SkipRule
	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoizer creates a memoizer. A nil keyer selects DefaultKeyer; a nil
// cache selects an unbounded MemoryCache.
func NewMemoizer[In, Out any](c Cache[Out], keyer Keyer) *Memoizer[In, Out] {
	if c == nil {
		c = NewMemoryCache[Out](UnboundedPolicy())
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &Memoizer[In, Out]{cache: c, keyer: keyer}
}

// WithSkipRule sets a rule that leaves matching operations unwrapped.
// Pass DefaultSkipRule to exclude operations tagged as side-effecting.
func (m *Memoizer[In, Out]) WithSkipRule(rule SkipRule) *Memoizer[In, Out] {
	m.skip = rule
	return m
}

// Wrap returns o with memoization. A recursive operation benefits on its
// sub-calls only when it calls the returned operation, not o itself.
// If the skip rule matches o, o is returned as is.
func (m *Memoizer[In, Out]) Wrap(o *op.Operation[In, Out]) *op.Operation[In, Out] {
	name := o.Meta().ID()
	if m.skip != nil && m.skip(name, o.Tags()) {
		return o
	}

	return op.Wrap(o, func(next op.Func[In, Out]) op.Func[In, Out] {
		return func(ctx context.Context, in In) (Out, error) {
			var zero Out

			key, err := m.keyer.Key(name, in)
			if err != nil {
				return zero, fmt.Errorf("cache: memoize %s: %w", name, err)
			}
			if err := ValidateKey(key); err != nil {
				return zero, fmt.Errorf("cache: memoize %s: %w", name, err)
			}

			if cached, ok := m.cache.Get(ctx, key); ok {
				m.hits.Add(1)
				return cached, nil
			}

			// The shared computation outlives any one caller's cancellation;
			// each caller stops waiting on its own ctx instead.
			flightCtx := context.WithoutCancel(ctx)
			computed := false

			ch := m.group.DoChan(key, func() (v any, err error) {
				defer func() {
					if r := recover(); r != nil {
						v, err = nil, &flightPanic{value: r}
					}
				}()

				// Another caller may have filled the entry while we waited.
				if cached, ok := m.cache.Get(flightCtx, key); ok {
					return cached, nil
				}

				computed = true
				m.misses.Add(1)
				result, err := next(flightCtx, in)
				if err != nil {
					return result, err
				}
				_ = m.cache.Set(flightCtx, key, result)
				return result, nil
			})

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case res := <-ch:
				var fp *flightPanic
				if errors.As(res.Err, &fp) {
					panic(fp.value)
				}
				if res.Err == nil && !computed {
					m.hits.Add(1)
				}
				out, _ := res.Val.(Out)
				return out, res.Err
			}
		}
	})
}

// flightPanic carries a panic out of the shared computation so that every
// waiting caller re-raises it.
type flightPanic struct {
	value any
}

func (p *flightPanic) Error() string {
	return fmt.Sprintf("cache: memoized operation panicked: %v", p.value)
}

// Stats returns a snapshot of hit, miss, and entry counts.
func (m *Memoizer[In, Out]) Stats() Stats {
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: m.cache.Len(),
	}
}

// Memoize wraps o with an unbounded memoizer using DefaultKeyer.
func Memoize[In, Out any](o *op.Operation[In, Out]) *op.Operation[In, Out] {
	return NewMemoizer[In, Out](nil, nil).Wrap(o)
}

// MemoizeWith wraps o with a memoizer whose cache follows policy. The
// memoizer is returned alongside so callers can read its Stats.
func MemoizeWith[In, Out any](o *op.Operation[In, Out], policy Policy, keyer Keyer) (*op.Operation[In, Out], *Memoizer[In, Out], error) {
	c, err := NewCache[Out](policy)
	if err != nil {
		return nil, nil, err
	}
	m := NewMemoizer[In, Out](c, keyer)
	return m.Wrap(o), m, nil
}

package op

import (
	"context"
	"maps"
	"slices"
)

// Func is the call signature every operation shares. Multiple arguments are
// carried in In as a struct, array, or map.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Meta describes an operation for logging, telemetry, and inspection.
type Meta struct {
	Name        string         // Operation name (required for readable logs)
	Namespace   string         // Optional grouping prefix
	Version     string         // Optional version
	Category    string         // Optional category
	Tags        []string       // Labels attached with Tag
	Annotations map[string]any // Key/value metadata attached with Annotate
}

// ID returns the fully qualified operation identifier.
// Format: <namespace>.<name> or <name>
func (m Meta) ID() string {
	name := m.Name
	if name == "" {
		name = AnonymousName
	}
	if m.Namespace != "" {
		return m.Namespace + "." + name
	}
	return name
}

// Clone returns a deep copy of the metadata containers.
func (m Meta) Clone() Meta {
	m.Tags = slices.Clone(m.Tags)
	m.Annotations = maps.Clone(m.Annotations)
	return m
}

// Operation is a named, immutable callable.
//
// Contract:
// - Concurrency: Call is safe for concurrent use if the underlying Func is.
// - Ownership: Meta accessors return copies; callers may modify them freely.
// - Errors: Call returns ErrNilFunc when the Func is nil.
type Operation[In, Out any] struct {
	meta Meta
	fn   Func[In, Out]
}

// New creates an operation from a context-aware function.
func New[In, Out any](name string, fn Func[In, Out]) *Operation[In, Out] {
	return NewWithMeta(Meta{Name: name}, fn)
}

// NewWithMeta creates an operation with full metadata.
func NewWithMeta[In, Out any](meta Meta, fn Func[In, Out]) *Operation[In, Out] {
	return &Operation[In, Out]{meta: meta.Clone(), fn: fn}
}

// Lift adapts a plain function that cannot fail into an operation.
func Lift[In, Out any](name string, fn func(In) Out) *Operation[In, Out] {
	if fn == nil {
		return New[In, Out](name, nil)
	}
	return New(name, func(_ context.Context, in In) (Out, error) {
		return fn(in), nil
	})
}

// Call invokes the operation.
func (o *Operation[In, Out]) Call(ctx context.Context, in In) (Out, error) {
	if o == nil || o.fn == nil {
		var zero Out
		return zero, ErrNilFunc
	}
	return o.fn(ctx, in)
}

// Func returns the operation's function, suitable for passing to code that
// expects a plain Func.
func (o *Operation[In, Out]) Func() Func[In, Out] {
	return o.Call
}

// Name returns the operation name, or AnonymousName when none was given.
func (o *Operation[In, Out]) Name() string {
	if o.meta.Name == "" {
		return AnonymousName
	}
	return o.meta.Name
}

// Meta returns a copy of the operation metadata.
func (o *Operation[In, Out]) Meta() Meta {
	return o.meta.Clone()
}

// Wrap returns a new operation whose function is mw(o's function). The
// metadata is carried over, so the wrapped operation keeps o's identity.
func Wrap[In, Out any](o *Operation[In, Out], mw func(next Func[In, Out]) Func[In, Out]) *Operation[In, Out] {
	return &Operation[In, Out]{
		meta: o.meta.Clone(),
		fn:   mw(o.Call),
	}
}

// Decorator transforms an operation into an augmented one.
type Decorator[In, Out any] func(*Operation[In, Out]) *Operation[In, Out]

// Chain applies decorators in order; the first decorator ends up innermost.
func Chain[In, Out any](o *Operation[In, Out], decorators ...Decorator[In, Out]) *Operation[In, Out] {
	for _, d := range decorators {
		if d == nil {
			continue
		}
		o = d(o)
	}
	return o
}

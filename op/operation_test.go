package op

import (
	"context"
	"errors"
	"testing"
)

func TestNew_CallReturnsResult(t *testing.T) {
	add := New("add", func(_ context.Context, p [2]int) (int, error) {
		return p[0] + p[1], nil
	})

	got, err := add.Call(context.Background(), [2]int{2, 5})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != 7 {
		t.Errorf("Call() = %d, want 7", got)
	}
	if add.Name() != "add" {
		t.Errorf("Name() = %q, want %q", add.Name(), "add")
	}
}

func TestOperation_NilFunc(t *testing.T) {
	o := New[int, int]("broken", nil)
	if _, err := o.Call(context.Background(), 1); !errors.Is(err, ErrNilFunc) {
		t.Errorf("Call() error = %v, want ErrNilFunc", err)
	}

	var nilOp *Operation[int, int]
	if _, err := nilOp.Call(context.Background(), 1); !errors.Is(err, ErrNilFunc) {
		t.Errorf("nil Call() error = %v, want ErrNilFunc", err)
	}

	lifted := Lift[int, int]("lifted", nil)
	if _, err := lifted.Call(context.Background(), 1); !errors.Is(err, ErrNilFunc) {
		t.Errorf("Lift(nil) Call() error = %v, want ErrNilFunc", err)
	}
}

func TestOperation_AnonymousName(t *testing.T) {
	o := Lift("", func(n int) int { return n })
	if o.Name() != AnonymousName {
		t.Errorf("Name() = %q, want %q", o.Name(), AnonymousName)
	}
}

func TestMeta_ID(t *testing.T) {
	tests := []struct {
		name string
		meta Meta
		want string
	}{
		{"name only", Meta{Name: "fly"}, "fly"},
		{"namespaced", Meta{Name: "fly", Namespace: "birds"}, "birds.fly"},
		{"empty", Meta{}, AnonymousName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperation_MetaIsCopied(t *testing.T) {
	meta := Meta{Name: "op", Tags: []string{"a"}, Annotations: map[string]any{"k": 1}}
	o := NewWithMeta(meta, func(_ context.Context, in int) (int, error) { return in, nil })

	meta.Tags[0] = "mutated"
	meta.Annotations["k"] = 2

	got := o.Meta()
	if got.Tags[0] != "a" {
		t.Errorf("Tags[0] = %q, want %q", got.Tags[0], "a")
	}
	if got.Annotations["k"] != 1 {
		t.Errorf("Annotations[k] = %v, want 1", got.Annotations["k"])
	}

	got.Tags[0] = "changed"
	if o.Tags()[0] != "a" {
		t.Error("Meta() should return a copy")
	}
}

func TestWrap_PreservesIdentity(t *testing.T) {
	base := NewWithMeta(Meta{Name: "double", Namespace: "math", Tags: []string{"pure"}},
		func(_ context.Context, n int) (int, error) { return n * 2, nil })

	calls := 0
	wrapped := Wrap(base, func(next Func[int, int]) Func[int, int] {
		return func(ctx context.Context, n int) (int, error) {
			calls++
			return next(ctx, n)
		}
	})

	got, err := wrapped.Call(context.Background(), 21)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Call() = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("middleware calls = %d, want 1", calls)
	}
	if wrapped.Meta().ID() != "math.double" {
		t.Errorf("ID() = %q, want %q", wrapped.Meta().ID(), "math.double")
	}
	if !wrapped.HasTag("pure") {
		t.Error("wrapped operation lost its tags")
	}
}

func TestWrap_PropagatesErrors(t *testing.T) {
	testErr := errors.New("boom")
	base := New("fail", func(_ context.Context, _ int) (int, error) { return 0, testErr })
	wrapped := Wrap(base, func(next Func[int, int]) Func[int, int] { return next })

	if _, err := wrapped.Call(context.Background(), 0); err != testErr {
		t.Errorf("Call() error = %v, want %v", err, testErr)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	record := func(label string) Decorator[int, int] {
		return func(o *Operation[int, int]) *Operation[int, int] {
			return Wrap(o, func(next Func[int, int]) Func[int, int] {
				return func(ctx context.Context, n int) (int, error) {
					order = append(order, label)
					return next(ctx, n)
				}
			})
		}
	}

	base := Lift("id", func(n int) int { return n })
	chained := Chain(base, record("inner"), nil, record("outer"))

	if _, err := chained.Call(context.Background(), 1); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}

func TestOperation_Func(t *testing.T) {
	o := Lift("inc", func(n int) int { return n + 1 })
	fn := o.Func()
	got, err := fn(context.Background(), 1)
	if err != nil || got != 2 {
		t.Errorf("Func()(1) = %d, %v; want 2, nil", got, err)
	}
}

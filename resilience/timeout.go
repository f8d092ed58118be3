package resilience

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jonwraymond/tooldecor/observe"
	"github.com/jonwraymond/tooldecor/op"
)

// TimeoutConfig configures the timeout wrapper.
type TimeoutConfig struct {
	// Timeout is the maximum duration for the operation. A bound of zero has
	// already elapsed when the call starts, so every call times out without
	// running the operation. Negative values are treated as zero.
	Timeout time.Duration

	// Logger receives the completion line emitted after every call.
	// Default: observe.NopLogger()
	Logger observe.Logger
}

// Timeout wraps operations with a timeout.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout wrapper.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout < 0 {
		config.Timeout = 0
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	return &Timeout{config: config}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// Execute runs fn with the timeout. It returns ErrTimeout when the deadline
// passes before fn returns.
func (t *Timeout) Execute(ctx context.Context, fn func(context.Context) error) error {
	_, timedOut, err := run(ctx, t.config.Timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	if timedOut {
		return ErrTimeout
	}
	return err
}

// ExecuteWithTimeout is a convenience function to run fn with a timeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	return NewTimeout(TimeoutConfig{Timeout: timeout}).Execute(ctx, fn)
}

// WithTimeout returns an operation that fails with a *TimeoutError when o
// does not return within t's bound. A completion line naming the operation
// is logged exactly once per call, on every path: "<name> finished." when o
// returned (successfully or not), "<name> timed out." when it overran, and
// "<name> cancelled." when the caller's context ended first.
func WithTimeout[In, Out any](o *op.Operation[In, Out], t *Timeout) *op.Operation[In, Out] {
	name := o.Name()
	bound := t.config.Timeout
	logger := t.config.Logger.WithOperation(o.Meta())

	return op.Wrap(o, func(next op.Func[In, Out]) op.Func[In, Out] {
		return func(ctx context.Context, in In) (Out, error) {
			start := time.Now()
			var (
				result   Out
				err      error
				timedOut bool
			)
			defer func() {
				fields := []observe.Field{
					{Key: "operation", Value: name},
					{Key: "timeout_seconds", Value: bound.Seconds()},
					{Key: "elapsed_seconds", Value: time.Since(start).Seconds()},
				}
				switch {
				case timedOut:
					logger.Warn(ctx, name+" timed out.", fields...)
				case err != nil && ctx.Err() != nil:
					logger.Warn(ctx, name+" cancelled.", append(fields, observe.Field{Key: "error", Value: err.Error()})...)
				default:
					logger.Info(ctx, name+" finished.", fields...)
				}
			}()

			result, timedOut, err = run(ctx, bound, func(ctx context.Context) (Out, error) {
				return next(ctx, in)
			})
			if timedOut {
				return result, &TimeoutError{Operation: name, Timeout: bound}
			}
			return result, err
		}
	})
}

type outcome[Out any] struct {
	value Out
	err   error
	panic *PanicError
}

// run executes fn on a worker goroutine and waits for it or the deadline.
// timedOut is true only when this call's own deadline expired. A panic on the
// worker is re-raised on the calling goroutine as a *PanicError.
func run[Out any](ctx context.Context, timeout time.Duration, fn func(context.Context) (Out, error)) (_ Out, timedOut bool, _ error) {
	if timeout <= 0 {
		var zero Out
		return zero, true, ErrTimeout
	}

	// A per-call cause tells this deadline apart from one inherited from ctx.
	own := fmt.Errorf("resilience: deadline of %s exceeded", timeout)
	ctx, cancel := context.WithTimeoutCause(ctx, timeout, own)
	defer cancel()

	done := make(chan outcome[Out], 1)

	go func() {
		var res outcome[Out]
		defer func() {
			if r := recover(); r != nil {
				res.panic = &PanicError{Value: r, Stack: debug.Stack()}
			}
			done <- res
		}()
		res.value, res.err = fn(ctx)
	}()

	select {
	case res := <-done:
		if res.panic != nil {
			panic(res.panic)
		}
		return res.value, false, res.err
	case <-ctx.Done():
		var zero Out
		if context.Cause(ctx) == own {
			return zero, true, ErrTimeout
		}
		return zero, false, ctx.Err()
	}
}

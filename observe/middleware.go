package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/tooldecor/op"
)

// Middleware wraps operation calls with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: operations returned by Instrument are safe for concurrent use
//     if the wrapped operation is.
//   - Errors: errors from the wrapped operation are recorded and propagated unchanged.
//   - Ownership: inputs and results are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Instrument returns o wrapped with m's span, metrics, and completion log.
func Instrument[In, Out any](m *Middleware, o *op.Operation[In, Out]) *op.Operation[In, Out] {
	meta := o.Meta()
	logger := m.logger.WithOperation(meta)

	return op.Wrap(o, func(next op.Func[In, Out]) op.Func[In, Out] {
		return func(ctx context.Context, in In) (Out, error) {
			ctx, span := m.tracer.StartSpan(ctx, meta)
			start := time.Now()

			result, err := next(ctx, in)

			duration := time.Since(start)
			m.tracer.EndSpan(span, err)
			m.metrics.RecordExecution(ctx, meta, duration, err)

			fields := []Field{
				{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
			}
			if err != nil {
				fields = append(fields, Field{Key: "error", Value: err.Error()})
				logger.Error(ctx, "operation failed", fields...)
			} else {
				logger.Info(ctx, "operation completed", fields...)
			}

			return result, err
		}
	})
}

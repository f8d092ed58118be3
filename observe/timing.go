package observe

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/tooldecor/op"
)

// Timed returns an operation that logs the wall-clock duration of every call
// as "<name> took <seconds> seconds to run.". Results and errors pass
// through unchanged.
func Timed[In, Out any](o *op.Operation[In, Out], logger Logger) *op.Operation[In, Out] {
	if logger == nil {
		logger = NopLogger()
	}
	name := o.Name()
	logger = logger.WithOperation(o.Meta())

	return op.Wrap(o, func(next op.Func[In, Out]) op.Func[In, Out] {
		return func(ctx context.Context, in In) (Out, error) {
			start := time.Now()
			result, err := next(ctx, in)
			seconds := time.Since(start).Seconds()

			fields := []Field{
				{Key: "operation", Value: name},
				{Key: "duration_seconds", Value: seconds},
			}
			if err != nil {
				fields = append(fields, Field{Key: "error", Value: err.Error()})
			}
			logger.Info(ctx, fmt.Sprintf("%s took %v seconds to run.", name, seconds), fields...)

			return result, err
		}
	})
}

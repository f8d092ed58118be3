package resilience

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when an operation times out.
var ErrTimeout = errors.New("resilience: operation timed out")

// TimeoutError reports which operation overran and the bound it exceeded.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("resilience: %s timed out after %s", e.Operation, e.Timeout)
}

// Is reports ErrTimeout as a match so callers can use errors.Is.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// PanicError carries a panic raised on a worker goroutine back to the caller.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("resilience: operation panicked: %v", e.Value)
}

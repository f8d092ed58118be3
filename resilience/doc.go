// Package resilience bounds how long an operation may run.
//
// A Timeout runs each call on a worker goroutine under a context deadline. If
// the deadline passes first, the caller receives a *TimeoutError (matching
// ErrTimeout) and the worker's context is cancelled. Go cannot forcibly stop
// a goroutine, so a callee that ignores its context keeps running in the
// background until it returns; its result is discarded.
//
// Deadlines compose through the context: a bounded operation called from
// inside another bounded operation stops at whichever deadline comes first.
//
//	t := resilience.NewTimeout(resilience.TimeoutConfig{
//	    Timeout: 5 * time.Second,
//	    Logger:  logger,
//	})
//	barr := resilience.WithTimeout(op.New("barr", work), t)
//	_, err := barr.Call(ctx, input)
//	if errors.Is(err, resilience.ErrTimeout) {
//	    // overran
//	}
package resilience

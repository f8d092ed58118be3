package op

import "errors"

// ErrNilFunc is returned when an operation built around a nil Func is called.
var ErrNilFunc = errors.New("op: operation func is nil")

// AnonymousName is reported by operations constructed without a name.
const AnonymousName = "anonymous"

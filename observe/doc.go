// Package observe provides the logging, tracing, and metrics used around
// decorated operations.
//
// Two decorations live here because they are pure observability wrappers:
//
//   - Timed logs how long each call took.
//   - LogReturnType logs the dynamic type of each result.
//
// Middleware combines an OpenTelemetry span, execution metrics, and a
// completion log line around any op.Operation. An Observer built from Config
// supplies the tracer, meter, and logger for it.
package observe

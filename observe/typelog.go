package observe

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jonwraymond/tooldecor/op"
)

// Result kinds reported by KindOf.
const (
	KindNil     = "nil"
	KindInteger = "integer"
	KindFloat   = "float"
	KindComplex = "complex"
	KindString  = "string"
	KindBoolean = "boolean"
	KindSeq     = "sequence"
	KindMapping = "mapping"
	KindStruct  = "struct"
	KindPointer = "pointer"
	KindFunc    = "function"
	KindChannel = "channel"
	KindUnknown = "unknown"
)

// KindOf classifies the dynamic type of v into a language-neutral kind.
func KindOf(v any) string {
	if v == nil {
		return KindNil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Complex64, reflect.Complex128:
		return KindComplex
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Slice, reflect.Array:
		return KindSeq
	case reflect.Map:
		return KindMapping
	case reflect.Struct:
		return KindStruct
	case reflect.Pointer, reflect.UnsafePointer:
		return KindPointer
	case reflect.Func:
		return KindFunc
	case reflect.Chan:
		return KindChannel
	default:
		return KindUnknown
	}
}

// typeName returns the Go type of v, or "nil".
func typeName(v any) string {
	if v == nil {
		return KindNil
	}
	return reflect.TypeOf(v).String()
}

// LogReturnType returns an operation that logs the dynamic type of each
// successful result as "<name>() returned type <T>.". Failed calls are not
// logged; their error passes through.
func LogReturnType[In, Out any](o *op.Operation[In, Out], logger Logger) *op.Operation[In, Out] {
	if logger == nil {
		logger = NopLogger()
	}
	name := o.Name()
	logger = logger.WithOperation(o.Meta())

	return op.Wrap(o, func(next op.Func[In, Out]) op.Func[In, Out] {
		return func(ctx context.Context, in In) (Out, error) {
			result, err := next(ctx, in)
			if err != nil {
				return result, err
			}

			var boxed any = result
			typ := typeName(boxed)
			logger.Info(ctx, fmt.Sprintf("%s() returned type %s.", name, typ),
				Field{Key: "operation", Value: name},
				Field{Key: "type", Value: typ},
				Field{Key: "kind", Value: KindOf(boxed)},
			)

			return result, nil
		}
	})
}

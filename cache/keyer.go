package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxDepth bounds nesting during canonicalization and stops pointer cycles.
const maxDepth = 32

// Keyer generates deterministic cache keys from an operation name and input.
//
// Contract:
// - Determinism: equal inputs produce the same key regardless of map iteration order.
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: inputs that cannot be keyed return an error wrapping ErrUnhashableKey.
type Keyer interface {
	Key(operation string, input any) (string, error)
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key generates a deterministic cache key.
// Format: memo:<operation>:<hash>
// where hash is the first 16 hex characters of SHA-256(canonical(input)).
func (k *DefaultKeyer) Key(operation string, input any) (string, error) {
	canonical, err := Canonicalize(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return "memo:" + operation + ":" + hex.EncodeToString(sum[:8]), nil
}

// FastKeyer generates xxhash based cache keys. It is cheaper than
// DefaultKeyer for large inputs at the cost of a non-cryptographic hash.
type FastKeyer struct{}

// NewFastKeyer creates a new xxhash keyer.
func NewFastKeyer() *FastKeyer {
	return &FastKeyer{}
}

// Key generates a deterministic cache key.
// Format: memo:<operation>:<xxhash64 as 16 hex characters>
func (k *FastKeyer) Key(operation string, input any) (string, error) {
	canonical, err := Canonicalize(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("memo:%s:%016x", operation, xxhash.Sum64(canonical)), nil
}

// Canonicalize encodes v deterministically so that equal values produce
// equal bytes. Pointers are followed, map entries are sorted by their
// encoded key, and struct fields (exported or not) are emitted in
// declaration order. The dynamic type of v and of every value held in an
// interface is written as a prefix, so values of different types never
// share an encoding.
func Canonicalize(v any) ([]byte, error) {
	var b strings.Builder
	if err := encodeTyped(&b, reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// encodeTyped writes v as <type>(<value>).
func encodeTyped(b *strings.Builder, v reflect.Value, depth int) error {
	if !v.IsValid() {
		b.WriteString("null")
		return nil
	}
	b.WriteString(typeID(v.Type()))
	b.WriteByte('(')
	if err := encode(b, v, depth); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

// typeID qualifies named types with their package path.
func typeID(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func encode(b *strings.Builder, v reflect.Value, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrUnhashableKey, maxDepth)
	}

	switch v.Kind() {
	case reflect.Invalid:
		b.WriteString("null")

	case reflect.Pointer:
		if v.IsNil() {
			b.WriteString("null")
			return nil
		}
		return encode(b, v.Elem(), depth+1)

	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("null")
			return nil
		}
		return encodeTyped(b, v.Elem(), depth+1)

	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return fmt.Errorf("%w: NaN is never equal to itself", ErrUnhashableKey)
		}
		if f == 0 {
			f = 0 // -0 equals 0
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		if math.IsNaN(real(c)) || math.IsNaN(imag(c)) {
			return fmt.Errorf("%w: NaN is never equal to itself", ErrUnhashableKey)
		}
		re, im := real(c), imag(c)
		if re == 0 {
			re = 0
		}
		if im == 0 {
			im = 0
		}
		b.WriteString(strconv.FormatComplex(complex(re, im), 'g', -1, 128))

	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteString("null")
			return nil
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encode(b, v.Index(i), depth+1); err != nil {
				return err
			}
		}
		b.WriteByte(']')

	case reflect.Map:
		if v.IsNil() {
			b.WriteString("null")
			return nil
		}
		return encodeMap(b, v, depth)

	case reflect.Struct:
		t := v.Type()
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(t.Field(i).Name))
			b.WriteByte(':')
			if err := encode(b, v.Field(i), depth+1); err != nil {
				return err
			}
		}
		b.WriteByte('}')

	default:
		// Func, Chan, UnsafePointer
		return fmt.Errorf("%w: unsupported type %s", ErrUnhashableKey, v.Type())
	}
	return nil
}

func encodeMap(b *strings.Builder, v reflect.Value, depth int) error {
	type pair struct{ key, value string }
	pairs := make([]pair, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		var kb, vb strings.Builder
		if err := encode(&kb, iter.Key(), depth+1); err != nil {
			return err
		}
		if err := encode(&vb, iter.Value(), depth+1); err != nil {
			return err
		}
		pairs = append(pairs, pair{kb.String(), vb.String()})
	}

	slices.SortFunc(pairs, func(a, b pair) int { return strings.Compare(a.key, b.key) })

	b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.key)
		b.WriteByte(':')
		b.WriteString(p.value)
	}
	b.WriteByte('}')
	return nil
}

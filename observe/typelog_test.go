package observe

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jonwraymond/tooldecor/op"
)

func fly() *op.Operation[any, any] {
	return op.Lift("fly", func(v any) any { return v })
}

func TestLogReturnType_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKind string
		wantType string
	}{
		{"integer", 42, KindInteger, "int"},
		{"sequence", []int{1, 2, 3}, KindSeq, "[]int"},
		{"mapping", map[string]int{"a": 42}, KindMapping, "map[string]int"},
		{"string", "hi", KindString, "string"},
		{"float", 1.5, KindFloat, "float64"},
		{"boolean", true, KindBoolean, "bool"},
		{"nil", nil, KindNil, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logged := LogReturnType(fly(), NewLoggerWithWriter("info", &buf))

			got, err := logged.Call(context.Background(), tt.value)
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("Call() = %v, want %v", got, tt.value)
			}

			entries := decodeLines(t, &buf)
			if len(entries) != 1 {
				t.Fatalf("expected 1 log line, got %d", len(entries))
			}
			entry := entries[0]
			if entry["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %s", entry["kind"], tt.wantKind)
			}
			if entry["type"] != tt.wantType {
				t.Errorf("type = %v, want %s", entry["type"], tt.wantType)
			}
			wantMsg := "fly() returned type " + tt.wantType + "."
			if entry["msg"] != wantMsg {
				t.Errorf("msg = %v, want %q", entry["msg"], wantMsg)
			}
		})
	}
}

func TestLogReturnType_ErrorNotLogged(t *testing.T) {
	var buf bytes.Buffer
	testErr := errors.New("nope")
	failing := op.New("fail", func(_ context.Context, _ int) (int, error) { return 0, testErr })

	logged := LogReturnType(failing, NewLoggerWithWriter("info", &buf))
	if _, err := logged.Call(context.Background(), 1); err != testErr {
		t.Errorf("Call() error = %v, want %v", err, testErr)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output on error, got %q", buf.String())
	}
}

func TestKindOf(t *testing.T) {
	x := 1
	type point struct{ X, Y int }

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"uint8", uint8(1), KindInteger},
		{"int64", int64(1), KindInteger},
		{"float32", float32(1), KindFloat},
		{"complex", complex(1, 2), KindComplex},
		{"array", [2]int{1, 2}, KindSeq},
		{"bytes", []byte("x"), KindSeq},
		{"struct", point{1, 2}, KindStruct},
		{"pointer", &x, KindPointer},
		{"typed nil pointer", (*int)(nil), KindPointer},
		{"func", func() {}, KindFunc},
		{"chan", make(chan int), KindChannel},
		{"nil", nil, KindNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.value); got != tt.want {
				t.Errorf("KindOf(%T) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

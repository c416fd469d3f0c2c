package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func mapOf(kvs ...any) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, yaml.MapItem{Key: kvs[i], Value: kvs[i+1]})
	}
	return res
}

func mustFromAny(t *testing.T, v any) *Node {
	t.Helper()
	res, err := FromAny(v)
	if err != nil {
		t.Fatalf("FromAny(%v): %v", v, err)
	}
	return res
}

// toAny normalizes v to the types ToAny returns.
func toAny(t *testing.T, v any) any {
	t.Helper()
	return ToAny(mustFromAny(t, v))
}

func TestFromAny(t *testing.T) {
	str := "s"
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "int", in: 3, want: int64(3)},
		{name: "int8", in: int8(-3), want: int64(-3)},
		{name: "uint64", in: uint64(7), want: int64(7)},
		{name: "big uint64", in: uint64(math.MaxUint64), want: float64(math.MaxUint64)},
		{name: "float", in: 1.5, want: 1.5},
		{name: "float32", in: float32(0.5), want: 0.5},
		{name: "bool", in: true, want: true},
		{name: "pointer", in: &str, want: "s"},
		{name: "slice", in: []string{"a", "b"}, want: []any{"a", "b"}},
		{
			name: "map sorted",
			in:   map[string]int{"b": 2, "a": 1},
			want: mapOf("a", int64(1), "b", int64(2)),
		},
		{
			name: "ordered map",
			in:   mapOf("b", 2, "a", []any{1}),
			want: mapOf("b", int64(2), "a", []any{int64(1)}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAny(mustFromAny(t, tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromAnyNodeIsDetached(t *testing.T) {
	doc := mustFromAny(t, mapOf("a", mapOf("b", 1)))
	a := Get(doc, "a")
	res := mustFromAny(t, a)
	if res == a || res.Parent != nil || res.KPath() != "" {
		t.Errorf("FromAny(*Node) kept its parent")
	}
	if Get(res, "b").Parent != res {
		t.Errorf("children not reparented")
	}
}

func TestFromAnyBad(t *testing.T) {
	for _, v := range []any{make(chan int), map[int]string{1: "x"}, func() {}} {
		if _, err := FromAny(v); !errors.Is(err, ErrBadValue) {
			t.Errorf("FromAny(%T): got %v", v, err)
		}
	}
}

func TestToAnyNumbers(t *testing.T) {
	tests := []struct {
		node *Node
		want any
	}{
		{&Node{Type: NumberType, Number: "12"}, int64(12)},
		{&Node{Type: NumberType, Number: "1e3"}, 1000.0},
		{FromFloat(2), 2.0},
		{FromInt(-4), int64(-4)},
	}
	for _, tt := range tests {
		if got := ToAny(tt.node); got != tt.want {
			t.Errorf("ToAny(%v) = %#v, want %#v", tt.node.Number, got, tt.want)
		}
	}
}

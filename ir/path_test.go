package ir

import (
	"testing"
)

func TestNode_KPath(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "root node",
			node: FromMap(map[string]*Node{}),
			want: "",
		},
		{
			name: "simple object field",
			node: FromMap(map[string]*Node{
				"a": FromString("value"),
			}).Values[0],
			want: "a",
		},
		{
			name: "nested object field",
			node: FromMap(map[string]*Node{
				"a": FromMap(map[string]*Node{
					"b": FromString("value"),
				}),
			}).Values[0].Values[0],
			want: "a.b",
		},
		{
			name: "array element",
			node: FromSlice([]*Node{
				FromString("first"),
				FromString("second"),
			}).Values[1],
			want: "[1]",
		},
		{
			name: "nested array element",
			node: FromMap(map[string]*Node{
				"arr": FromSlice([]*Node{
					FromString("first"),
					FromString("second"),
				}),
			}).Values[0].Values[1],
			want: "arr[1]",
		},
		{
			name: "quoted field",
			node: FromMap(map[string]*Node{
				"a.b": FromString("value"),
			}).Values[0],
			want: `"a.b"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.KPath(); got != tt.want {
				t.Errorf("KPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNode_Lookup(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromKeyVals([]KeyVal{
			{Key: FromString("b"), Val: FromSlice([]*Node{FromInt(1), FromInt(2)})},
		})},
		{Key: FromString("s"), Val: FromString("x")},
	})
	tests := []struct {
		name    string
		segs    []string
		want    string
		missing int
	}{
		{name: "root", segs: nil, want: ""},
		{name: "field", segs: []string{"a"}, want: "a"},
		{name: "index", segs: []string{"a", "b", "1"}, want: "a.b[1]"},
		{name: "missing field", segs: []string{"a", "c"}, missing: 1},
		{name: "index out of range", segs: []string{"a", "b", "2"}, missing: 2},
		{name: "negative index", segs: []string{"a", "b", "-1"}, missing: 2},
		{name: "field of sequence", segs: []string{"a", "b", "x"}, missing: 2},
		{name: "under scalar", segs: []string{"s", "t"}, missing: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := doc.Lookup(tt.segs)
			if tt.want == "" && tt.segs != nil {
				if got != nil || missing != tt.missing {
					t.Errorf("Lookup() = %v, %d, want nil, %d", got, missing, tt.missing)
				}
				return
			}
			if missing != -1 {
				t.Fatalf("Lookup() missing %d", missing)
			}
			if got.KPath() != tt.want {
				t.Errorf("Lookup() at %q, want %q", got.KPath(), tt.want)
			}
		})
	}
}

func TestNode_Find(t *testing.T) {
	inner := FromString("v")
	inner.Line, inner.Column = 2, 6
	outer := FromKeyVals([]KeyVal{{Key: FromString("b"), Val: inner}})
	outer.Line, outer.Column = 2, 3
	doc := FromKeyVals([]KeyVal{{Key: FromString("a"), Val: outer}})
	doc.Line, doc.Column = 1, 1

	if got := doc.Find(2, 7); got != inner {
		t.Errorf("Find(2, 7) = %v", got.KPath())
	}
	if got := doc.Find(2, 4); got != outer {
		t.Errorf("Find(2, 4) = %v", got.KPath())
	}
	if got := doc.Find(1, 1); got != doc {
		t.Errorf("Find(1, 1) = %v", got.KPath())
	}
}

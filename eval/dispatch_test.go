package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xyaml/ir"
)

type pair struct {
	A, B any
}

func pairCtor() *Constructor {
	return &Constructor{
		Name:   "pair",
		Params: []Param{{Name: "a"}, {Name: "b", Optional: true}},
		New: func(args Args) (any, error) {
			return pair{A: args.Get("a"), B: args.Get("b")}, nil
		},
	}
}

func testDispatcher() *Dispatcher {
	reg := NewRegistry().MustRegister(pairCtor(), &Constructor{
		Name: "fail",
		New: func(Args) (any, error) {
			return nil, errors.New("boom")
		},
	})
	return &Dispatcher{
		Registry: reg,
		Resolve: func(ref string) (any, error) {
			return "resolved " + ref, nil
		},
	}
}

func node(t *testing.T) *ir.Node {
	t.Helper()
	child := ir.Null()
	ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("x"), Val: child}})
	return child
}

func TestConstructBinding(t *testing.T) {
	d := testDispatcher()
	tests := []struct {
		body any
		want pair
	}{
		{yaml.MapSlice{{Key: "a", Value: int64(1)}, {Key: "b", Value: "two"}}, pair{int64(1), "two"}},
		{yaml.MapSlice{{Key: "a", Value: int64(1)}}, pair{A: int64(1)}},
		{[]any{"x", "y"}, pair{"x", "y"}},
		{[]any{"x"}, pair{A: "x"}},
		{"solo", pair{A: "solo"}},
		{map[string]any{"b": 2.5, "a": true}, pair{true, 2.5}},
	}
	for _, test := range tests {
		got, err := d.Construct("!pair", node(t), test.body)
		if err != nil {
			t.Errorf("%v: %v", test.body, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%v (-want +got):\n%s", test.body, diff)
		}
	}
}

func TestConstructBindingErrors(t *testing.T) {
	d := testDispatcher()
	bodies := []any{
		[]any{},
		[]any{1, 2, 3},
		nil,
		yaml.MapSlice{{Key: "b", Value: 1}},
		yaml.MapSlice{{Key: "a", Value: 1}, {Key: "c", Value: 1}},
	}
	for _, body := range bodies {
		_, err := d.Construct("!pair", node(t), body)
		if !errors.Is(err, ErrArgumentBinding) {
			t.Errorf("%v: expected binding error, got %v", body, err)
			continue
		}
		var e *Error
		if !errors.As(err, &e) || e.Path != "x" || e.Tag != "pair" {
			t.Errorf("%v: missing location in %v", body, err)
		}
	}
}

func TestConstructUnknown(t *testing.T) {
	_, err := testDispatcher().Construct("!nope", node(t), nil)
	if !errors.Is(err, ErrUnknownConstructor) {
		t.Fatalf("expected unknown constructor, got %v", err)
	}
	if !strings.Contains(err.Error(), "!nope") {
		t.Errorf("error %q does not name the tag", err)
	}
}

func TestConstructFailed(t *testing.T) {
	_, err := testDispatcher().Construct("!fail", node(t), nil)
	if !errors.Is(err, ErrConstructorFailed) {
		t.Fatalf("expected constructor failure, got %v", err)
	}
	if err.Error() != "at x: !fail: constructor failed: boom" {
		t.Errorf("unexpected message %q", err)
	}
}

func TestConstructCauseIsVisible(t *testing.T) {
	sentinel := errors.New("sentinel")
	d := &Dispatcher{Registry: NewRegistry().MustRegister(&Constructor{
		Name: "wrap",
		New: func(Args) (any, error) {
			return nil, sentinel
		},
	})}
	_, err := d.Construct("wrap", node(t), nil)
	if !errors.Is(err, sentinel) || !errors.Is(err, ErrConstructorFailed) {
		t.Errorf("got %v", err)
	}
}

func TestConstructReferenceTag(t *testing.T) {
	got, err := testDispatcher().Construct("!$a.b", node(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "resolved $a.b" {
		t.Errorf("got %v", got)
	}
}

func TestRegister(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(pairCtor()); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(pairCtor()); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("expected ErrSymbolExists, got %v", err)
	}
	bad := []*Constructor{
		{Name: "", New: pairCtor().New},
		{Name: "a$b", New: pairCtor().New},
		{Name: "a b", New: pairCtor().New},
		{Name: "nofunc"},
		{Name: "dup", Params: []Param{{Name: "x"}, {Name: "x"}}, New: pairCtor().New},
	}
	for _, c := range bad {
		if err := reg.Register(c); !errors.Is(err, ErrBadConstructor) {
			t.Errorf("%q: expected ErrBadConstructor, got %v", c.Name, err)
		}
	}
}

func TestSymbols(t *testing.T) {
	var names []string
	for _, c := range Builtins().Symbols() {
		names = append(names, c.Name)
	}
	want := []string{"b64enc", "expr", "osenv", "toint", "tostring", "tovalue"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := OSEnv().Signature(); got != "osenv(name, default?)" {
		t.Errorf("signature %q", got)
	}
}

package parse

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/ir"
)

type parseTest struct {
	in string
	e  error
}

func tags(node *ir.Node) map[string]string {
	res := map[string]string{}
	_ = node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Tag != "" {
			res[n.KPath()] = n.Tag
		}
		return true, nil
	})
	return res
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`},
		{in: `true`},
		{in: `22`},
		{in: `1e14`},
		{in: `-0.5`},
		{in: `"hello"`},
		{in: `hello`},
		{in: "|\n  z\n"},
		{in: `[a,b]`},
		{in: `[[]]`},
		{in: `[a,[b,[c]]]`},
		{in: `!tag a`},
		{in: `!tag []`},
		{in: `[!tag a]`},
		{in: "# comment\n[0, !tag a, 1]"},
		{in: "a: !$b.c\nd: [!$a , x]"},
		{in: `{"a b": "$c", d: "yes", e: "12", f: "null"}`},
		{in: "a: b\nc:\n  e: f"},
		{in: "- - a\n- - b"},
		{in: "- a: 1\n  b: 2\n- c: 3"},
		{in: "a: !Layer\n  name: x\n  sizes: [1, 2]\nb: !$a"},
		{in: "a: &x {b: 1}\nc: *x"},
		{in: "a: ': colon'\nb: 'x # y'\nc: '- dash'\nd: ''"},
		{in: "a: 99999999999999999999"},
		{in: "a: .inf\nb: 3.0"},
	}
	for i := range pts {
		pt := &pts[i]
		node, err := Parse([]byte(pt.in))
		if err != nil {
			t.Errorf("# doc\n%s\n# error %v", pt.in, err)
			continue
		}
		out := encode.MustString(node)
		again, err := Parse([]byte(out))
		if err != nil {
			t.Errorf("# doc\n%s\n# encoded\n%s\n# error %v", pt.in, out, err)
			continue
		}
		if diff := cmp.Diff(ir.ToAny(node), ir.ToAny(again)); diff != "" {
			t.Errorf("# doc\n%s\n# encoded\n%s\n(-parsed +reparsed):\n%s", pt.in, out, diff)
		}
		if diff := cmp.Diff(tags(node), tags(again)); diff != "" {
			t.Errorf("# doc\n%s\n# tags (-parsed +reparsed):\n%s", pt.in, diff)
		}
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "", want: nil},
		{in: "a: 1\nb: 1.5\nc: true\nd: ~\ne: x", want: yaml.MapSlice{
			{Key: "a", Value: int64(1)},
			{Key: "b", Value: 1.5},
			{Key: "c", Value: true},
			{Key: "d", Value: nil},
			{Key: "e", Value: "x"},
		}},
		{in: `a: "1"`, want: yaml.MapSlice{{Key: "a", Value: "1"}}},
		{in: "a: !tag 1", want: yaml.MapSlice{{Key: "a", Value: int64(1)}}},
		{in: "a: !!str 1", want: yaml.MapSlice{{Key: "a", Value: "1"}}},
		{in: "base: &b {x: 1, y: 2}\nd:\n  <<: *b\n  y: 3", want: yaml.MapSlice{
			{Key: "base", Value: yaml.MapSlice{{Key: "x", Value: int64(1)}, {Key: "y", Value: int64(2)}}},
			{Key: "d", Value: yaml.MapSlice{{Key: "y", Value: int64(3)}, {Key: "x", Value: int64(1)}}},
		}},
	}
	for _, test := range tests {
		node, err := Parse([]byte(test.in))
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if diff := cmp.Diff(test.want, ir.ToAny(node)); diff != "" {
			t.Errorf("%q (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestParseTagsAndPositions(t *testing.T) {
	node, err := Parse([]byte("a: !Layer\n  name: x\nb: !$a.name\nc: [!tostring 1]\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"a": "!Layer", "b": "!$a.name", "c[0]": "!tostring"}
	if diff := cmp.Diff(want, tags(node)); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	name := ir.Get(ir.Get(node, "a"), "name")
	if name.Line != 2 || name.Column != 9 {
		t.Errorf("position %d:%d", name.Line, name.Column)
	}
	b := ir.Get(node, "b")
	if b.Type != ir.NullType || !ir.IsRefTag(b.Tag) {
		t.Errorf("reference tag parsed as %s %q", b.Type, b.Tag)
	}
}

func TestBadParse(t *testing.T) {
	pts := []parseTest{
		{in: "a: [1", e: ErrSyntax},
		{in: "a: 1\na: 2", e: ErrDuplicateKey},
		{in: "? [a]\n: 1", e: ErrKeyType},
		{in: "!k a: 1", e: ErrKeyTag},
		{in: "a: !$b 1", e: ErrRefBody},
		{in: "a: !$b [1]", e: ErrRefBody},
		{in: "a: &x [*x]", e: ErrAlias},
		{in: "<<: 1", e: ErrKeyType},
	}
	for _, pt := range pts {
		_, err := Parse([]byte(pt.in))
		if !errors.Is(err, pt.e) {
			t.Errorf("%q: expected %v, got %v", pt.in, pt.e, err)
			continue
		}
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("%q: %v is not a malformed document error", pt.in, err)
		}
		var pErr *Error
		if !errors.As(err, &pErr) || pErr.Line == 0 {
			t.Errorf("%q: no position in %v", pt.in, err)
		}
	}
}

func TestParseOptions(t *testing.T) {
	if _, err := Parse([]byte("a: &x 1\nb: *x"), NoAliases()); !errors.Is(err, ErrAlias) {
		t.Errorf("NoAliases: got %v", err)
	}
	if _, err := Parse([]byte("a: {b: {c: 1}}"), ParseMaxDepth(1)); !errors.Is(err, ErrTooDeep) {
		t.Errorf("ParseMaxDepth: got %v", err)
	}
	if _, err := Parse([]byte("a: 1\n---\nb: 2"), SingleDocument()); !errors.Is(err, ErrSyntax) {
		t.Errorf("SingleDocument: got %v", err)
	}
	node, err := Parse([]byte("a: 1\n---\nb: 2"))
	if err != nil || ir.Get(node, "a") == nil {
		t.Errorf("first document: %v", err)
	}
}

// laughs builds a document of levels anchors, each a sequence of ten
// aliases to the one before.
func laughs(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [" + strings.Repeat("x, ", 9) + "x]\n")
	for i := 1; i < levels; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s%s]\n", i, i, strings.Repeat(ref+", ", 9), ref)
	}
	return b.String()
}

func TestParseAliasExpansion(t *testing.T) {
	node, err := Parse([]byte(laughs(3)))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ir.Get(node, "l2").Values[9].Values); got != 10 {
		t.Errorf("expanded alias has %d values", got)
	}
	if _, err := Parse([]byte(laughs(3)), ParseMaxAliasNodes(50)); !errors.Is(err, ErrAlias) {
		t.Errorf("ParseMaxAliasNodes: got %v", err)
	}
	_, err = Parse([]byte(laughs(9)))
	if !errors.Is(err, ErrAlias) || !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected alias expansion to fail, got %v", err)
	}
	var pErr *Error
	if !errors.As(err, &pErr) || pErr.Line == 0 {
		t.Errorf("no position in %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	node, err := ParseOverrides(nil)
	if err != nil || node.Type != ir.ObjectType || len(node.Fields) != 0 {
		t.Errorf("empty overrides: %v %v", node, err)
	}
	if _, err := ParseOverrides([]byte("[1]")); !errors.Is(err, ErrNotMapping) {
		t.Errorf("sequence overrides: got %v", err)
	}
}

package resolve

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"
)

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return node
}

type resolveTest struct {
	Doc string
	In  any
	Out any
}

func TestResolve(t *testing.T) {
	tests := []resolveTest{
		{Doc: "a: 3", In: "plain", Out: "plain"},
		{Doc: "a: 3", In: int64(7), Out: int64(7)},
		{Doc: "a: 3", In: nil, Out: nil},
		{Doc: "a: 3", In: "cost: 5$", Out: "cost: 5$"},
		{Doc: "a: 3\nb: $a", In: "$b", Out: int64(3)},
		{Doc: "a: 3\nb: $a\nc: $b/$b", In: "$c", Out: "3/3"},
		{Doc: "a: 1.5", In: "$a", Out: 1.5},
		{Doc: "a: 2.0", In: "v$a", Out: "v2.0"},
		{Doc: "a: true", In: "$a", Out: true},
		{Doc: "a: ~", In: "x-$a", Out: "x-null"},
		{Doc: "a: {b: {c: deep}}", In: "$a.b.c", Out: "deep"},
		{Doc: "a: [x, y, z]", In: "$a.1", Out: "y"},
		{Doc: "a: {b: 1}", In: "$a", Out: yaml.MapSlice{{Key: "b", Value: int64(1)}}},
		{Doc: "a: {b: 1, c: [x]}", In: "<$a>", Out: "<{b: 1, c: [x]}>"},
		{Doc: "a: 3\nb: !$a\nc: !$b", In: "$c", Out: int64(3)},
		{Doc: "a: 3\nb: !$a", In: "n=$b", Out: "n=3"},
		{Doc: "a: 3\nb: $a.", In: "$b", Out: "3."},
		{Doc: "dir: /tmp\nout: $dir/out\nlog: $out/log", In: "$log", Out: "/tmp/out/log"},
		{Doc: "x: 1\ny: 2", In: "$x+$y", Out: "1+2"},
		{Doc: "a: 1\nb: $a-$c\nc: $a", In: "$b", Out: "1-1"},
		{Doc: "l: !Layer {name: x}\nm: $l", In: "$m", Out: yaml.MapSlice{{Key: "name", Value: "x"}}},
		{Doc: "a: x\nb: !$a\nc: $b$a$b", In: "[$c]", Out: "[xxx]"},
	}
	for _, test := range tests {
		r := New(mustParse(t, test.Doc))
		got, err := r.Resolve(test.In, nil)
		if err != nil {
			t.Errorf("%q in %q: %v", test.In, test.Doc, err)
			continue
		}
		if diff := cmp.Diff(test.Out, got); diff != "" {
			t.Errorf("%q in %q (-want +got):\n%s", test.In, test.Doc, diff)
		}
	}
}

func TestResolveCircular(t *testing.T) {
	docs := []string{
		"x: $y\ny: $x",
		"x: !$y\ny: !$x",
		"a: $b\nb: $c\nc: $a",
		"a: $a",
		"a: $a/x",
		"a: x$a",
		"a: $a$a",
		"a: !$a/b",
		"x: $y/1\ny: $x/2",
		"x: !$y\ny: a-$x",
	}
	for _, doc := range docs {
		r := New(mustParse(t, doc))
		in := "$" + string(doc[0])
		_, err := r.Resolve(in, nil)
		if !errors.Is(err, ErrCircularReference) {
			t.Errorf("%q: expected circular reference, got %v", doc, err)
			continue
		}
		var rerr *Error
		if !errors.As(err, &rerr) {
			t.Fatalf("%q: expected *Error, got %T", doc, err)
		}
		if rerr.Chain[0] != in || rerr.Ref != in {
			t.Errorf("%q: chain %s does not loop back to %s", doc, rerr.Chain, in)
		}
	}
}

func TestResolveMissing(t *testing.T) {
	r := New(mustParse(t, "a: {b: {c: 1}}"))
	tests := []struct {
		in, seg, path string
	}{
		{"$a.b.d", "d", "a.b"},
		{"$z", "z", ""},
		{"$a.b.c.d", "d", "a.b.c"},
		{"pre $a.x post", "x", "a"},
	}
	for _, test := range tests {
		_, err := r.Resolve(test.in, nil)
		if !errors.Is(err, ErrMissingReference) {
			t.Errorf("%q: expected missing reference, got %v", test.in, err)
			continue
		}
		var rerr *Error
		errors.As(err, &rerr)
		if rerr.Segment != test.seg || rerr.Path != test.path {
			t.Errorf("%q: got segment %q under %q, want %q under %q", test.in, rerr.Segment, rerr.Path, test.seg, test.path)
		}
	}
}

func TestResolveChainTooLong(t *testing.T) {
	r := New(mustParse(t, "a: $b\nb: $c\nc: $d\nd: 1"))
	r.MaxHops = 2
	if _, err := r.Resolve("$a", nil); !errors.Is(err, ErrReferenceChainTooLong) {
		t.Fatalf("expected chain too long, got %v", err)
	}
	r.MaxHops = 4
	v, err := r.Resolve("$a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(1) {
		t.Errorf("got %v", v)
	}
}

// ladder returns a document where each of n+1 keys interpolates the one
// before it twice.
func ladder(base string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "s0: %q\n", base)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "s%d: $s%d$s%d\n", i, i-1, i-1)
	}
	return b.String()
}

func TestResolveMaxLength(t *testing.T) {
	r := New(mustParse(t, ladder("xxxxxxxx", 4)))
	r.MaxLength = 100
	if _, err := r.Resolve("$s4", nil); !errors.Is(err, ErrReferenceChainTooLong) {
		t.Fatalf("expected chain too long, got %v", err)
	}
	r.MaxLength = 128
	v, err := r.Resolve("$s4", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != strings.Repeat("x", 128) {
		t.Errorf("got %v", v)
	}

	r = New(mustParse(t, ladder("x", 24)))
	if _, err := r.Resolve("$s24", nil); !errors.Is(err, ErrReferenceChainTooLong) {
		t.Fatalf("expected default length limit, got %v", err)
	}
}

func TestResolveRepeatedReferences(t *testing.T) {
	// each key is interpolated once however often it is reached
	r := New(mustParse(t, ladder("", 25)))
	v, err := r.Resolve("<$s25>", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != "<>" {
		t.Errorf("got %q", v)
	}
}

func TestResolveValueHook(t *testing.T) {
	r := New(mustParse(t, "a: !thing 3\nb: $a"))
	var seen []string
	r.Value = func(target *ir.Node, chain Chain) (any, error) {
		seen = append(seen, target.KPath())
		if diff := cmp.Diff(Chain{"$b", "$a"}, chain); diff != "" {
			t.Errorf("chain (-want +got):\n%s", diff)
		}
		return "built", nil
	}
	v, err := r.Resolve("$b", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != "built" || len(seen) != 1 || seen[0] != "a" {
		t.Errorf("got %v after %v", v, seen)
	}
}

func TestChainWith(t *testing.T) {
	c := Chain{"$a"}
	d := c.With("$b")
	e := c.With("$c")
	if d[1] != "$b" || e[1] != "$c" || len(c) != 1 {
		t.Errorf("chains share storage: %v %v %v", c, d, e)
	}
}

func TestFindAll(t *testing.T) {
	got := FindAll("$a.b/$c_d.0-$e.")
	if diff := cmp.Diff([]string{"$a.b", "$c_d.0", "$e"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !IsFullMatch("$a.b") || IsFullMatch("$a.b/") || IsFullMatch("x$a") {
		t.Error("full match")
	}
}

func TestResolveTagsOnly(t *testing.T) {
	r := New(mustParse(t, "a: 1\nb: $a\nc: !$b"))
	r.TagsOnly = true
	got, err := r.Resolve("$c", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "$a" {
		t.Errorf("got %v", got)
	}
}

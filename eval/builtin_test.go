package eval

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type builtinTest struct {
	Name string
	Body any
	Out  any
}

func TestBuiltins(t *testing.T) {
	t.Setenv("XY_TEST_VAR", "from-env")
	reg := Builtins()
	tests := []builtinTest{
		{Name: "osenv", Body: "XY_TEST_VAR", Out: "from-env"},
		{Name: "osenv", Body: []any{"XY_TEST_UNSET_VAR", int64(5)}, Out: int64(5)},
		{Name: "osenv", Body: "XY_TEST_UNSET_VAR", Out: ""},
		{Name: "tovalue", Body: "{a: [1, two]}", Out: yaml.MapSlice{{Key: "a", Value: []any{int64(1), "two"}}}},
		{Name: "tostring", Body: int64(42), Out: "42"},
		{Name: "tostring", Body: 3.0, Out: "3.0"},
		{Name: "tostring", Body: []any{[]any{int64(1), true}}, Out: "[1, true]"},
		{Name: "toint", Body: "0x10", Out: int64(16)},
		{Name: "toint", Body: 2.9, Out: int64(2)},
		{Name: "toint", Body: true, Out: int64(1)},
		{Name: "b64enc", Body: "hello", Out: "aGVsbG8="},
		{Name: "expr", Body: "1 + 2", Out: int64(3)},
		{Name: "expr", Body: yaml.MapSlice{
			{Key: "expr", Value: "w * h"},
			{Key: "w", Value: int64(3)},
			{Key: "h", Value: int64(4)},
		}, Out: int64(12)},
		{Name: "expr", Body: yaml.MapSlice{
			{Key: "expr", Value: `m.name + "-" + getenv("XY_TEST_VAR")`},
			{Key: "m", Value: yaml.MapSlice{{Key: "name", Value: "n"}}},
		}, Out: "n-from-env"},
	}
	for _, test := range tests {
		c := reg.Lookup(test.Name)
		if c == nil {
			t.Fatalf("no builtin %s", test.Name)
		}
		args, err := Bind(c, test.Body)
		if err != nil {
			t.Errorf("%s %v: %v", test.Name, test.Body, err)
			continue
		}
		got, err := c.New(args)
		if err != nil {
			t.Errorf("%s %v: %v", test.Name, test.Body, err)
			continue
		}
		if diff := cmp.Diff(test.Out, got); diff != "" {
			t.Errorf("%s %v (-want +got):\n%s", test.Name, test.Body, diff)
		}
	}
}

func TestBuiltinErrors(t *testing.T) {
	reg := Builtins()
	for name, body := range map[string]any{
		"toint":   "nope",
		"tovalue": "a: [",
		"expr":    "1 +",
		"osenv":   int64(1),
	} {
		c := reg.Lookup(name)
		args, err := Bind(c, body)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if _, err := c.New(args); err == nil {
			t.Errorf("%s %v: expected an error", name, body)
		}
	}
}

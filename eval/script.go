package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

var scriptSym = &Constructor{
	Name:   scriptName,
	Params: []Param{{Name: "expr"}},
	Rest:   true,
	New:    script,
}

// Script evaluates an expr-lang expression. Keyword arguments other than
// expr are the variables of the expression:
//
//	area: !expr {expr: "w * h", w: $size.w, h: $size.h}
func Script() *Constructor {
	return scriptSym
}

const (
	scriptName = "expr"
)

func script(args Args) (any, error) {
	src, err := args.String("expr")
	if err != nil {
		return nil, err
	}
	env := make(map[string]any, args.Len())
	for _, n := range args.Names() {
		if n == "expr" {
			continue
		}
		env[n] = exprValue(args.Get(n))
	}
	program, err := expr.Compile(src, append(exprOpts(), expr.Env(env))...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	v, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", src, err)
	}
	return normalize(v), nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// exprValue converts ordered mappings, which expressions cannot index,
// into maps.
func exprValue(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := make(map[string]any, len(x))
		for _, item := range x {
			res[fmt.Sprint(item.Key)] = exprValue(item.Value)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = exprValue(x[i])
		}
		return res
	}
	return v
}

// normalize maps expression results onto realized value types.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

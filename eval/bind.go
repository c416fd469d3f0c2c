package eval

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
)

// Bind binds the realized body of a tagged node to the parameters of c.
// A mapping binds by keyword and a sequence by position; null binds
// nothing and any other scalar is a single positional argument.
func Bind(c *Constructor, body any) (Args, error) {
	var (
		args Args
		err  error
	)
	switch x := body.(type) {
	case nil:
	case yaml.MapSlice:
		for _, item := range x {
			k, ok := item.Key.(string)
			if !ok {
				k = fmt.Sprint(item.Key)
			}
			if err = bindKeyword(c, &args, k, item.Value); err != nil {
				break
			}
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err = bindKeyword(c, &args, k, x[k]); err != nil {
				break
			}
		}
	case []any:
		err = bindPositional(c, &args, x)
	default:
		err = bindPositional(c, &args, []any{x})
	}
	if err == nil {
		err = checkRequired(c, &args)
	}
	if err != nil {
		return Args{}, &Error{Tag: c.Name, Err: ErrArgumentBinding, Cause: err}
	}
	return args, nil
}

func bindKeyword(c *Constructor, args *Args, k string, v any) error {
	if c.param(k) == nil && !c.Rest {
		return fmt.Errorf("unexpected keyword %q for %s", k, c.Signature())
	}
	args.set(k, v)
	return nil
}

func bindPositional(c *Constructor, args *Args, vals []any) error {
	if n, req := len(vals), c.Required(); n < req || n > len(c.Params) {
		want := fmt.Sprintf("%d", req)
		if req != len(c.Params) {
			want = fmt.Sprintf("%d to %d", req, len(c.Params))
		}
		return fmt.Errorf("%s takes %s positional arguments, got %d", c.Signature(), want, n)
	}
	for i, v := range vals {
		args.set(c.Params[i].Name, v)
	}
	return nil
}

func checkRequired(c *Constructor, args *Args) error {
	for _, p := range c.Params {
		if p.Optional {
			continue
		}
		if _, ok := args.Lookup(p.Name); !ok {
			return fmt.Errorf("missing argument %q for %s", p.Name, c.Signature())
		}
	}
	return nil
}

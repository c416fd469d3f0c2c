package xyaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"
)

var ErrOverrideArg = errors.New("bad override argument")

// OverridesFromArgs builds an override mapping from arguments of the form
// path=value, where path is a dotted key path and value is a YAML value,
// possibly tagged:
//
//	OverridesFromArgs([]string{"a.b=3", "c=!$a.b", "d={x: 1}"})
//
// Later arguments merge over earlier ones.
func OverridesFromArgs(args []string) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ObjectType}
	for _, a := range args {
		if err := setArg(res, a); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func setArg(root *ir.Node, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: %q expected path=value", ErrOverrideArg, a)
	}
	v, err := parse.Parse([]byte(val), parse.SingleDocument())
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrOverrideArg, a, err)
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	cur := root
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: %q has an empty path segment", ErrOverrideArg, a)
		}
		if i == n-1 {
			if v.Type == ir.ObjectType {
				_, err := ir.Merge(childMapping(cur, part), v)
				return err
			}
			cur.Set(part, v)
			break
		}
		next := ir.Get(cur, part)
		if next != nil && next.Type != ir.ObjectType {
			return fmt.Errorf("%w: cannot access %s, %s", ErrOverrideArg, strings.Join(parts[:i+1], "."), next.Type)
		}
		cur = childMapping(cur, part)
	}
	return nil
}

func childMapping(parent *ir.Node, key string) *ir.Node {
	next := ir.Get(parent, key)
	if next == nil || next.Type != ir.ObjectType {
		next = &ir.Node{Type: ir.ObjectType}
		parent.Set(key, next)
	}
	return next
}

package xyaml

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/xyaml/debug"
	"github.com/signadot/xyaml/eval"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/resolve"
)

// run realizes one merged document. Every node is realized at most once;
// later references to it share the value.
type run struct {
	*Loader
	res    *resolve.Resolver
	disp   *eval.Dispatcher
	memo   map[*ir.Node]any
	active map[*ir.Node]bool
	depth  int
}

func (l *Loader) newRun(doc *ir.Node) *run {
	r := &run{
		Loader: l,
		res: &resolve.Resolver{
			Doc:       doc,
			MaxHops:   l.maxHops,
			MaxLength: l.maxLength,
			TagsOnly:  !l.plainRefs,
		},
		memo:   map[*ir.Node]any{},
		active: map[*ir.Node]bool{},
	}
	r.res.Value = r.target
	r.disp = &eval.Dispatcher{
		Registry: l.Registry,
		Resolve: func(ref string) (any, error) {
			return r.res.Resolve(ref, nil)
		},
	}
	return r
}

// target realizes the node a full match reference points at.
func (r *run) target(node *ir.Node, chain resolve.Chain) (any, error) {
	if r.active[node] {
		err := &resolve.Error{
			Ref:   chain[len(chain)-1],
			Chain: chain[:len(chain)-1],
			Err:   resolve.ErrCircularReference,
		}
		return nil, fmt.Errorf("%w: %s is still being built", err, where(node))
	}
	return r.realize(node)
}

func (r *run) realize(node *ir.Node) (any, error) {
	if v, ok := r.memo[node]; ok {
		return v, nil
	}
	if r.active[node] {
		return nil, &resolve.Error{Ref: where(node), Err: resolve.ErrCircularReference}
	}
	if r.depth >= r.maxDepth {
		return nil, &resolve.Error{Ref: where(node), Err: resolve.ErrReferenceChainTooLong}
	}
	r.active[node] = true
	r.depth++
	defer func() {
		delete(r.active, node)
		r.depth--
	}()

	v, err := r.realizeNode(node)
	if err != nil {
		return nil, err
	}
	r.memo[node] = v
	return v, nil
}

func (r *run) realizeNode(node *ir.Node) (any, error) {
	if ir.IsRefTag(node.Tag) {
		v, err := r.disp.Construct(node.Tag, node, nil)
		if err != nil {
			return nil, at(node, err)
		}
		return v, nil
	}
	var body any
	switch node.Type {
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(node.Fields))
		for i, field := range node.Fields {
			v, err := r.realize(node.Values[i])
			if err != nil {
				return nil, err
			}
			ms[i] = yaml.MapItem{Key: field.String, Value: v}
		}
		body = ms
	case ir.ArrayType:
		vals := make([]any, len(node.Values))
		for i, elt := range node.Values {
			v, err := r.realize(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		body = vals
	case ir.StringType:
		body = node.String
		if r.plainRefs && resolve.HasRef(node.String) {
			v, err := r.res.Resolve(node.String, nil)
			if err != nil {
				return nil, at(node, err)
			}
			body = v
		}
	default:
		body = ir.ToAny(node)
	}
	if node.Tag == "" {
		return body, nil
	}
	if debug.Construct() {
		debug.Logf("%s at %s\n", node.Tag, where(node))
	}
	return r.disp.Construct(node.Tag, node, body)
}

func where(node *ir.Node) string {
	if p := node.KPath(); p != "" {
		return p
	}
	return "the document root"
}

// at locates a resolution error on node. Construction errors carry their
// own location.
func at(node *ir.Node, err error) error {
	var cErr *eval.Error
	if errors.As(err, &cErr) {
		return err
	}
	return &PathError{Path: node.KPath(), Err: err}
}

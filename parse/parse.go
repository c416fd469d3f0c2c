// Package parse turns YAML text into document trees.
//
// Custom tags are kept on the nodes they annotate; standard YAML tags only
// determine scalar types. Anchors, aliases and "<<" merge keys are expanded
// so that every node in the result has exactly one parent.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/xyaml/debug"
	"github.com/signadot/xyaml/ir"
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Parse parses the first document in d. Empty input yields a null node.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{maxDepth: MaxDepth, maxAliasNodes: MaxAliasNodes}
	for _, opt := range opts {
		opt(pOpts)
	}
	dec := yaml.NewDecoder(bytes.NewReader(d))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return ir.Null(), nil
		}
		return nil, syntaxError(err)
	}
	if pOpts.single {
		var next yaml.Node
		if err := dec.Decode(&next); err == nil {
			return nil, &Error{Line: next.Line, Column: next.Column, Msg: "more than one document", Err: ErrSyntax}
		} else if !errors.Is(err, io.EOF) {
			return nil, syntaxError(err)
		}
	}
	p := &parser{opts: pOpts, expanding: map[*yaml.Node]bool{}}
	res, err := p.node(&doc, 0)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed document:\n%v\n", res)
	}
	return res, nil
}

// ParseOverrides parses an override document, which must be a mapping or
// empty.
func ParseOverrides(d []byte, opts ...ParseOption) (*ir.Node, error) {
	res, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	switch res.Type {
	case ir.NullType:
		return &ir.Node{Type: ir.ObjectType}, nil
	case ir.ObjectType:
		return res, nil
	}
	return nil, &Error{Line: res.Line, Column: res.Column, Msg: "got " + res.Type.String(), Err: ErrNotMapping}
}

type parser struct {
	opts      *parseOpts
	expanding map[*yaml.Node]bool
	// expanded counts nodes built beneath an alias.
	expanded int
}

func (p *parser) errorf(n *yaml.Node, err error, format string, args ...any) error {
	return &Error{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (p *parser) node(n *yaml.Node, depth int) (*ir.Node, error) {
	if depth > p.opts.maxDepth {
		return nil, p.errorf(n, ErrTooDeep, "more than %d levels", p.opts.maxDepth)
	}
	if len(p.expanding) != 0 {
		p.expanded++
		if p.expanded > p.opts.maxAliasNodes {
			return nil, p.errorf(n, ErrAlias, "aliases expand to more than %d nodes", p.opts.maxAliasNodes)
		}
	}
	var (
		res *ir.Node
		err error
	)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ir.Null(), nil
		}
		return p.node(n.Content[0], depth)
	case yaml.AliasNode:
		return p.alias(n, depth)
	case yaml.ScalarNode:
		res, err = p.scalar(n)
	case yaml.SequenceNode:
		res, err = p.sequence(n, depth)
	case yaml.MappingNode:
		res, err = p.mapping(n, depth)
	default:
		return nil, p.errorf(n, ErrSyntax, "unexpected node kind %d", n.Kind)
	}
	if err != nil {
		return nil, err
	}
	res.Line, res.Column = n.Line, n.Column
	if tag := customTag(n); tag != "" {
		if err := ir.CheckTag(tag); err != nil {
			return nil, p.errorf(n, ErrBadTag, "%v", err)
		}
		if ir.IsRefTag(tag) && res.Type != ir.NullType {
			return nil, p.errorf(n, ErrRefBody, "%s has a %s value", tag, res.Type)
		}
		res.Tag = tag
	}
	return res, nil
}

// customTag returns the application tag of n, or "" when n carries no tag
// or a standard one.
func customTag(n *yaml.Node) string {
	if n.Tag == "" || n.Style&yaml.TaggedStyle == 0 || strings.HasPrefix(n.Tag, "!!") {
		return ""
	}
	return n.Tag
}

func (p *parser) alias(n *yaml.Node, depth int) (*ir.Node, error) {
	if p.opts.noAliases {
		return nil, p.errorf(n, ErrAlias, "alias *%s", n.Value)
	}
	if p.expanding[n.Alias] {
		return nil, p.errorf(n, ErrAlias, "alias *%s refers to an enclosing node", n.Value)
	}
	p.expanding[n.Alias] = true
	defer delete(p.expanding, n.Alias)
	res, err := p.node(n.Alias, depth)
	if err != nil {
		return nil, err
	}
	res.Line, res.Column = n.Line, n.Column
	return res, nil
}

func (p *parser) scalar(n *yaml.Node) (*ir.Node, error) {
	plain := *n
	if customTag(n) != "" {
		plain.Tag = ""
		plain.Style &^= yaml.TaggedStyle
	}
	tag := plain.ShortTag()
	plain.Tag = tag
	switch tag {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		var b bool
		if err := plain.Decode(&b); err != nil {
			return nil, p.errorf(n, ErrSyntax, "%v", err)
		}
		return ir.FromBool(b), nil
	case "!!int":
		var i int64
		if err := plain.Decode(&i); err == nil {
			res := ir.FromInt(i)
			res.Number = n.Value
			return res, nil
		}
		// out of int64 range
		fallthrough
	case "!!float":
		var f float64
		plain.Tag = "!!float"
		if err := plain.Decode(&f); err != nil {
			return nil, p.errorf(n, ErrSyntax, "%v", err)
		}
		res := ir.FromFloat(f)
		res.Number = n.Value
		return res, nil
	default:
		return ir.FromString(n.Value), nil
	}
}

func (p *parser) sequence(n *yaml.Node, depth int) (*ir.Node, error) {
	vals := make([]*ir.Node, len(n.Content))
	for i, c := range n.Content {
		v, err := p.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return ir.FromSlice(vals), nil
}

func (p *parser) mapping(n *yaml.Node, depth int) (*ir.Node, error) {
	var (
		kvs    []ir.KeyVal
		seen   = map[string]bool{}
		merges []*ir.Node
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.Tag == mergeTag {
			ms, err := p.mergeSources(v, depth)
			if err != nil {
				return nil, err
			}
			merges = append(merges, ms...)
			continue
		}
		key, err := p.key(k)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, p.errorf(k, ErrDuplicateKey, "%q", key)
		}
		seen[key] = true
		val, err := p.node(v, depth+1)
		if err != nil {
			return nil, err
		}
		kf := ir.FromString(key)
		kf.Line, kf.Column = k.Line, k.Column
		kvs = append(kvs, ir.KeyVal{Key: kf, Val: val})
	}
	// explicit keys win over merged ones, earlier merge sources over later
	for _, m := range merges {
		for j, f := range m.Fields {
			if seen[f.String] {
				continue
			}
			seen[f.String] = true
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(f.String), Val: m.Values[j]})
		}
	}
	return ir.FromKeyVals(kvs), nil
}

func (p *parser) key(k *yaml.Node) (string, error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", p.errorf(k, ErrKeyType, "got %s", kindName(k.Kind))
	}
	if customTag(k) != "" {
		return "", p.errorf(k, ErrKeyTag, "%s %q", k.Tag, k.Value)
	}
	return k.Value, nil
}

func (p *parser) mergeSources(v *yaml.Node, depth int) ([]*ir.Node, error) {
	var srcs []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		srcs = v.Content
	} else {
		srcs = []*yaml.Node{v}
	}
	res := make([]*ir.Node, 0, len(srcs))
	for _, s := range srcs {
		m, err := p.node(s, depth+1)
		if err != nil {
			return nil, err
		}
		if m.Type != ir.ObjectType {
			return nil, p.errorf(s, ErrKeyType, "merge key value is a %s", m.Type)
		}
		res = append(res, m)
	}
	return res, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}

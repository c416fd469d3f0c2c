// Package xyaml loads YAML documents extended with references and
// constructor tags.
//
// A document is parsed, merged with overrides, then realized bottom-up:
// strings such as "$a.b" or "$dir/out" are resolved against the merged
// document, nodes tagged !$a.b take the value at a.b, and nodes tagged
// with a registered constructor name are built from their realized
// contents.
//
//	reg := eval.Builtins()
//	reg.MustRegister(eval.Struct[Layer]("Layer"))
//	v, err := xyaml.Load(text, map[string]any{"size": 128}, reg)
package xyaml

import (
	"fmt"

	"github.com/signadot/xyaml/debug"
	"github.com/signadot/xyaml/eval"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"
	"github.com/signadot/xyaml/resolve"
)

// DefaultMaxDepth bounds nested realization.
const DefaultMaxDepth = 512

type Loader struct {
	Registry *eval.Registry

	maxHops   int
	maxLength int
	maxDepth  int
	plainRefs bool
	parseOpts []parse.ParseOption
	onState   func(State)
}

type Option func(*Loader)

// MaxHops bounds the length of a reference chain.
func MaxHops(n int) Option {
	return func(l *Loader) { l.maxHops = n }
}

// MaxLength bounds the text one interpolated string may produce.
func MaxLength(n int) Option {
	return func(l *Loader) { l.maxLength = n }
}

// MaxDepth bounds how deeply realization may nest, counting both
// containers and references followed into other parts of the document.
func MaxDepth(n int) Option {
	return func(l *Loader) { l.maxDepth = n }
}

// PlainReferences controls whether untagged strings containing references
// are resolved. When false only !$ tags are.
func PlainReferences(v bool) Option {
	return func(l *Loader) { l.plainRefs = v }
}

func ParseOptions(opts ...parse.ParseOption) Option {
	return func(l *Loader) { l.parseOpts = append(l.parseOpts, opts...) }
}

// OnState registers f to be called as a load enters each state.
func OnState(f func(State)) Option {
	return func(l *Loader) { l.onState = f }
}

func NewLoader(reg *eval.Registry, opts ...Option) *Loader {
	l := &Loader{
		Registry:  reg,
		maxHops:   resolve.DefaultMaxHops,
		maxLength: resolve.DefaultMaxLength,
		maxDepth:  DefaultMaxDepth,
		plainRefs: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads text with overrides using the constructors in reg.
func Load(text []byte, overrides any, reg *eval.Registry) (any, error) {
	return NewLoader(reg).Load(text, overrides)
}

// Load parses text, merges overrides into it and realizes the result.
// overrides is nil, override text ([]byte or string), a *ir.Node, or plain
// mapping data such as map[string]any or yaml.MapSlice.
func (l *Loader) Load(text []byte, overrides any) (any, error) {
	doc, err := parse.Parse(text, l.parseOpts...)
	if err != nil {
		return nil, err
	}
	return l.LoadNode(doc, overrides)
}

// LoadNode merges overrides into doc, modifying it, and realizes the
// result.
func (l *Loader) LoadNode(doc *ir.Node, overrides any) (any, error) {
	l.enter(Parsed)
	doc, err := l.Merge(doc, overrides)
	if err != nil {
		return nil, err
	}
	l.enter(Merged)
	r := l.newRun(doc)
	l.enter(Resolving)
	v, err := r.realize(doc)
	if err != nil {
		return nil, err
	}
	l.enter(Realized)
	if debug.Load() {
		debug.Dump("realized", v)
	}
	return v, nil
}

// Merge merges overrides into doc and returns the merged root.
func (l *Loader) Merge(doc *ir.Node, overrides any) (*ir.Node, error) {
	over, err := l.overrideNode(overrides)
	if err != nil {
		return nil, err
	}
	res, err := ir.Merge(doc, over)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if debug.Merge() && over != nil {
		debug.Logf("merged overrides\n%v\ninto\n%v\n", over, res)
	}
	return res, nil
}

// Resolve resolves ref against the already merged doc, building whatever
// the referenced value needs.
func (l *Loader) Resolve(doc *ir.Node, ref string) (any, error) {
	return l.newRun(doc).res.Resolve(ref, nil)
}

func (l *Loader) overrideNode(overrides any) (*ir.Node, error) {
	var (
		node *ir.Node
		err  error
	)
	switch x := overrides.(type) {
	case nil:
		return nil, nil
	case *ir.Node:
		if x == nil {
			return nil, nil
		}
		node, err = ir.FromAny(x)
	case []byte:
		node, err = parse.ParseOverrides(x, l.parseOpts...)
	case string:
		node, err = parse.ParseOverrides([]byte(x), l.parseOpts...)
	default:
		node, err = ir.FromAny(x)
	}
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType && node.Type != ir.NullType {
		return nil, fmt.Errorf("%w: got %s", parse.ErrNotMapping, node.Type)
	}
	return node, nil
}

func (l *Loader) enter(s State) {
	if debug.Load() {
		debug.Logf("load: %s\n", s)
	}
	if l.onState != nil {
		l.onState(s)
	}
}

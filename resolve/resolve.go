// Package resolve dereferences $a.b references against a document.
//
// A string that is exactly one reference resolves to the referenced value
// with its type intact. References embedded in a longer string are
// replaced by the text of their targets, each followed through any
// references its target holds in turn. Targets are looked up in the data
// tree only; constructors are never run to find them.
package resolve

import (
	"strings"

	"github.com/signadot/xyaml/debug"
	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/ir"
)

// DefaultMaxHops bounds the length of a chain.
const DefaultMaxHops = 64

// DefaultMaxLength bounds the text produced by one interpolation, in
// bytes.
const DefaultMaxLength = 1 << 20

type Resolver struct {
	Doc       *ir.Node
	MaxHops   int
	MaxLength int
	// TagsOnly treats untagged strings in the document as plain data, so
	// only !$ tags continue a chain.
	TagsOnly bool

	// Value produces the value of a full match target which is not itself
	// a reference. When nil the target's plain data is returned.
	Value func(target *ir.Node, chain Chain) (any, error)
}

func New(doc *ir.Node) *Resolver {
	return &Resolver{Doc: doc, MaxHops: DefaultMaxHops, MaxLength: DefaultMaxLength}
}

// Resolve resolves v within the context chain. Values other than strings
// containing references are returned unchanged.
func (r *Resolver) Resolve(v any, chain Chain) (any, error) {
	s, ok := v.(string)
	if !ok || !HasRef(s) {
		return v, nil
	}
	return r.resolve(s, chain, map[string]string{})
}

// resolve resolves a string holding references. texts caches the text of
// each reference interpolated so far.
func (r *Resolver) resolve(s string, chain Chain, texts map[string]string) (any, error) {
	if err := r.check(s, chain); err != nil {
		return nil, err
	}
	if debug.Resolve() {
		debug.Logf("resolve %q after [%s]\n", s, chain)
	}
	if !IsFullMatch(s) {
		return r.interpolate(s, chain, texts)
	}
	target, err := r.deref(s, chain)
	if err != nil {
		return nil, err
	}
	next := chain.With(s)
	if ref, ok := r.continues(target); ok {
		return r.resolve(ref, next, texts)
	}
	if r.Value != nil {
		return r.Value(target, next)
	}
	return ir.ToAny(target), nil
}

func (r *Resolver) check(s string, chain Chain) error {
	if chain.Contains(s) {
		return &Error{Ref: s, Chain: chain, Err: ErrCircularReference}
	}
	if len(chain) >= r.maxHops() {
		return &Error{Ref: s, Chain: chain, Err: ErrReferenceChainTooLong}
	}
	return nil
}

// continues returns the string a target stands for when the target is
// itself a reference.
func (r *Resolver) continues(target *ir.Node) (string, bool) {
	switch {
	case ir.IsRefTag(target.Tag):
		return ir.TagName(target.Tag), true
	case !r.TagsOnly && target.Tag == "" && target.Type == ir.StringType && HasRef(target.String):
		return target.String, true
	}
	return "", false
}

// Deref returns the node ref points at.
func (r *Resolver) Deref(ref string) (*ir.Node, error) {
	return r.deref(ref, nil)
}

func (r *Resolver) deref(ref string, chain Chain) (*ir.Node, error) {
	segs := Segments(ref)
	node, missing := r.Doc.Lookup(segs)
	if missing != -1 {
		return nil, &Error{
			Ref:     ref,
			Segment: segs[missing],
			Path:    strings.Join(segs[:missing], "."),
			Chain:   chain,
			Err:     ErrMissingReference,
		}
	}
	return node, nil
}

// interpolate replaces each reference in s by its text. Every reference
// is checked against the chain before it is followed.
func (r *Resolver) interpolate(s string, chain Chain, texts map[string]string) (string, error) {
	next := chain.With(s)
	var (
		b    strings.Builder
		last int
	)
	for _, loc := range refRE.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		last = loc[1]
		text, err := r.text(s[loc[0]:loc[1]], next, texts)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		if b.Len() > r.maxLength() {
			return "", &Error{Ref: s, Chain: chain, Err: ErrReferenceChainTooLong}
		}
	}
	b.WriteString(s[last:])
	if b.Len() > r.maxLength() {
		return "", &Error{Ref: s, Chain: chain, Err: ErrReferenceChainTooLong}
	}
	return b.String(), nil
}

func (r *Resolver) text(ref string, chain Chain, texts map[string]string) (string, error) {
	if t, ok := texts[ref]; ok {
		return t, nil
	}
	if err := r.check(ref, chain); err != nil {
		return "", err
	}
	target, err := r.deref(ref, chain)
	if err != nil {
		return "", err
	}
	res := Render(target)
	if cont, ok := r.continues(target); ok {
		next := chain.With(ref)
		if IsFullMatch(cont) {
			res, err = r.text(cont, next, texts)
		} else if err = r.check(cont, next); err == nil {
			res, err = r.interpolate(cont, next, texts)
		}
		if err != nil {
			return "", err
		}
	}
	texts[ref] = res
	return res, nil
}

// Render returns the text of node inside a larger string. A !$ tagged
// node renders as its reference.
func Render(node *ir.Node) string {
	if ir.IsRefTag(node.Tag) {
		return ir.TagName(node.Tag)
	}
	switch node.Type {
	case ir.StringType:
		return node.String
	case ir.NumberType:
		return encode.NumberString(node)
	case ir.BoolType:
		if node.Bool {
			return "true"
		}
		return "false"
	case ir.NullType:
		return "null"
	}
	return encode.MustString(node, encode.EncodeWire(true))
}

func (r *Resolver) maxLength() int {
	if r.MaxLength <= 0 {
		return DefaultMaxLength
	}
	return r.MaxLength
}

func (r *Resolver) maxHops() int {
	if r.MaxHops <= 0 {
		return DefaultMaxHops
	}
	return r.MaxHops
}

// Package ir holds the document tree shared by parsing, merging,
// resolution and construction.
package ir

import (
	"maps"
	"slices"
)

// Node is a document tree node. Mappings keep their keys in Fields and the
// corresponding values in Values; sequences only use Values.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	Tag string

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	// 1-based source position, zero when the node was not parsed.
	Line   int
	Column int
}

// Clone deep copies y. The copy keeps y's parent link but is not one of
// the parent's children.
func (y *Node) Clone() *Node {
	return y.clone(y.Parent)
}

func (y *Node) clone(parent *Node) *Node {
	res := *y
	res.Parent = parent
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	res.Fields = make([]*Node, len(y.Fields))
	for i, k := range y.Fields {
		res.Fields[i] = k.clone(&res)
	}
	res.Values = make([]*Node, len(y.Values))
	for i, v := range y.Values {
		res.Values[i] = v.clone(&res)
	}
	return &res
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds a mapping holding kvs in order and links them to it.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.add(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds a mapping with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	kvs := make([]KeyVal, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		kvs = append(kvs, KeyVal{Key: FromString(k), Val: m[k]})
	}
	return FromKeyVals(kvs)
}

func FromSlice(elts []*Node) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, len(elts))}
	for i, elt := range elts {
		elt.Parent, elt.ParentIndex, elt.ParentField = res, i, ""
		res.Values[i] = elt
	}
	return res
}

// Get returns the value of field in the mapping y, or nil.
func Get(y *Node, field string) *Node {
	if i := y.index(field); i != -1 {
		return y.Values[i]
	}
	return nil
}

func (y *Node) index(field string) int {
	return slices.IndexFunc(y.Fields, func(k *Node) bool { return k.String == field })
}

// Set sets field in the mapping y to val, replacing any previous value in
// place or appending a new key.
func (y *Node) Set(field string, val *Node) {
	i := y.index(field)
	if i == -1 {
		y.add(FromString(field), val)
		return
	}
	val.Parent, val.ParentIndex, val.ParentField = y, i, field
	y.Values[i] = val
}

func (y *Node) add(key, val *Node) {
	i := len(y.Fields)
	key.Parent, key.ParentIndex, key.ParentField = y, i, key.String
	val.Parent, val.ParentIndex, val.ParentField = y, i, key.String
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range y.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(y, true)
	return err
}

func (y *Node) Root() *Node {
	for y.Parent != nil {
		y = y.Parent
	}
	return y
}

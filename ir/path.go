package ir

import (
	"strconv"
	"strings"
)

// KPath returns the dotted key path of y from the root, e.g. "a.b[0].c".
// The root has the empty path.
func (y *Node) KPath() string {
	if y.Parent == nil {
		return ""
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		if f == "" || strings.ContainsAny(f, ".[]\"' \t\n") {
			f = strconv.Quote(f)
		}
		prefix := y.Parent.KPath()
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	case ArrayType:
		return y.Parent.KPath() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Lookup walks segments from y. A segment selects a mapping key, or, on a
// sequence, an element by decimal index. It returns the node found, or nil
// and the index of the first segment that could not be followed.
func (y *Node) Lookup(segments []string) (*Node, int) {
	res := y
	for i, seg := range segments {
		var next *Node
		switch res.Type {
		case ObjectType:
			next = Get(res, seg)
		case ArrayType:
			n, err := strconv.Atoi(seg)
			if err == nil && n >= 0 && n < len(res.Values) {
				next = res.Values[n]
			}
		}
		if next == nil {
			return nil, i
		}
		res = next
	}
	return res, -1
}

// Find returns the innermost node whose source position starts at or
// before line:col, preferring deeper nodes. Positions are 1-based.
func (y *Node) Find(line, col int) *Node {
	var res *Node
	_ = y.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost || n.Line == 0 {
			return !isPost, nil
		}
		if n.Line < line || (n.Line == line && n.Column <= col) {
			res = n
		}
		return true, nil
	})
	return res
}

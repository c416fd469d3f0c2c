package libdiff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/xyaml/ir"
)

// Change is one structural difference between two documents. From is nil
// for an insertion and To for a deletion.
type Change struct {
	Path     string
	Op       Op
	From, To *ir.Node
}

// Nodes returns the changes turning from into to, in document order.
// Mappings are compared by key; sequences are aligned on their elements
// and changed elements are compared in turn.
func Nodes(from, to *ir.Node) []Change {
	var res []Change
	diffNode(from, to, &res)
	return res
}

func diffNode(from, to *ir.Node, res *[]Change) {
	if from.Type != to.Type {
		*res = append(*res, Change{Path: to.KPath(), Op: Replace, From: from, To: to})
		return
	}
	if from.Tag != to.Tag {
		*res = append(*res, Change{Path: to.KPath(), Op: Retag, From: from, To: to})
	}
	switch from.Type {
	case ir.ObjectType:
		diffObject(from, to, res)
	case ir.ArrayType:
		diffArray(from, to, res)
	default:
		if summaryStr(from) != summaryStr(to) || from.String != to.String {
			*res = append(*res, Change{Path: to.KPath(), Op: Replace, From: from, To: to})
		}
	}
}

func diffObject(from, to *ir.Node, res *[]Change) {
	for i, f := range from.Fields {
		tv := ir.Get(to, f.String)
		if tv == nil {
			*res = append(*res, Change{Path: from.Values[i].KPath(), Op: Delete, From: from.Values[i]})
			continue
		}
		diffNode(from.Values[i], tv, res)
	}
	for i, f := range to.Fields {
		if ir.Get(from, f.String) == nil {
			*res = append(*res, Change{Path: to.Values[i].KPath(), Op: Insert, To: to.Values[i]})
		}
	}
}

// diffArray aligns the elements of two sequences by diffing their
// summaries, one rune per element. Aligned elements of the same summary
// are compared recursively.
func diffArray(from, to *ir.Node, res *[]Change) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		for range n {
			switch d.Type {
			case diffpatch.DiffDelete:
				*res = append(*res, Change{Path: from.Values[fi].KPath(), Op: Delete, From: from.Values[fi]})
				fi++
			case diffpatch.DiffInsert:
				*res = append(*res, Change{Path: to.Values[ti].KPath(), Op: Insert, To: to.Values[ti]})
				ti++
			case diffpatch.DiffEqual:
				diffNode(from.Values[fi], to.Values[ti], res)
				fi++
				ti++
			}
		}
	}
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// summaryStr identifies scalars by type and value and containers by type
// alone, so that containers align and are then compared element-wise.
func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return node.Type.String() + "-i-" + strconv.FormatInt(*node.Int64, 10)
		case node.Float64 != nil:
			return node.Type.String() + "-f-" + strconv.FormatFloat(*node.Float64, 'f', -1, 64)
		}
		return node.Type.String() + "-" + node.Number
	}
	return node.Type.String()
}

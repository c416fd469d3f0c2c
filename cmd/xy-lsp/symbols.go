package main

import (
	"context"
	"fmt"

	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/resolve"
	"go.lsp.dev/protocol"
)

// DocumentSymbol outlines the mapping keys of the document.
func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	var res []interface{}
	for _, sym := range symbols(doc.node) {
		res = append(res, sym)
	}
	return res, nil
}

func symbols(node *ir.Node) []protocol.DocumentSymbol {
	var res []protocol.DocumentSymbol
	for i, v := range node.Values {
		name := fmt.Sprint(i)
		if node.Type == ir.ObjectType {
			name = node.Fields[i].String
		}
		r := nodeRange(v)
		if node.Type == ir.ObjectType && node.Fields[i].Line != 0 {
			r.Start = nodeRange(node.Fields[i]).Start
		}
		res = append(res, protocol.DocumentSymbol{
			Name:           name,
			Detail:         v.Tag,
			Kind:           symbolKind(v),
			Range:          r,
			SelectionRange: r,
			Children:       symbols(v),
		})
	}
	return res
}

func symbolKind(node *ir.Node) protocol.SymbolKind {
	switch {
	case ir.IsRefTag(node.Tag):
		return protocol.SymbolKindVariable
	case node.Tag != "":
		return protocol.SymbolKindConstructor
	}
	switch node.Type {
	case ir.ObjectType:
		return protocol.SymbolKindObject
	case ir.ArrayType:
		return protocol.SymbolKindArray
	case ir.StringType:
		return protocol.SymbolKindString
	case ir.NumberType:
		return protocol.SymbolKindNumber
	case ir.BoolType:
		return protocol.SymbolKindBoolean
	}
	return protocol.SymbolKindNull
}

// References lists the places referring to the node at the position, or
// to its target when it is itself a reference.
func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	res := resolve.New(doc.node)
	target := nodeAtPosition(doc.node, params.Position)
	if ref := refOf(target); ref != "" {
		t, err := res.Deref(ref)
		if err != nil {
			return nil, nil
		}
		target = t
	}
	if target == nil {
		return nil, nil
	}
	var locs []protocol.Location
	loc := func(n *ir.Node) {
		locs = append(locs, protocol.Location{URI: params.TextDocument.URI, Range: nodeRange(n)})
	}
	if params.Context.IncludeDeclaration {
		loc(target)
	}
	_ = doc.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		for _, ref := range refsIn(n) {
			if t, err := res.Deref(ref); err == nil && t == target {
				loc(n)
				break
			}
		}
		return true, nil
	})
	return locs, nil
}

func refsIn(node *ir.Node) []string {
	if ir.IsRefTag(node.Tag) {
		return []string{ir.TagName(node.Tag)}
	}
	if node.Type == ir.StringType {
		return resolve.FindAll(node.String)
	}
	return nil
}

func nodeRange(node *ir.Node) protocol.Range {
	if node.Line == 0 {
		return protocol.Range{}
	}
	pos := protocol.Position{Line: uint32(node.Line - 1), Character: uint32(node.Column - 1)}
	return protocol.Range{Start: pos, End: pos}
}

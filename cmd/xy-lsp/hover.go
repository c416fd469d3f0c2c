package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/resolve"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	node := nodeAtPosition(doc.node, params.Position)
	if node == nil {
		return nil, nil
	}
	hoverText := s.buildHoverText(doc, node)
	if hoverText == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	node := nodeAtPosition(doc.node, params.Position)
	ref := refOf(node)
	if ref == "" {
		return nil, nil
	}
	target, err := resolve.New(doc.node).Deref(ref)
	if err != nil || target.Line == 0 {
		return nil, nil
	}
	pos := protocol.Position{Line: uint32(target.Line - 1), Character: uint32(target.Column - 1)}
	return []protocol.Location{{
		URI:   params.TextDocument.URI,
		Range: protocol.Range{Start: pos, End: pos},
	}}, nil
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	res := &protocol.CompletionList{}
	switch charBefore(doc.content, params.Position) {
	case '!':
		for _, c := range s.reg.Symbols() {
			res.Items = append(res.Items, protocol.CompletionItem{
				Label:  c.Name,
				Kind:   protocol.CompletionItemKindConstructor,
				Detail: "!" + c.Signature(),
			})
		}
		res.Items = append(res.Items, protocol.CompletionItem{
			Label:  "$",
			Kind:   protocol.CompletionItemKindReference,
			Detail: "reference tag",
		})
	case '$':
		if doc.node == nil {
			return res, nil
		}
		_ = doc.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
			if isPost || n.Parent == nil || n.Parent.Type != ir.ObjectType {
				return !isPost, nil
			}
			if path := refPath(n); path != "" {
				res.Items = append(res.Items, protocol.CompletionItem{
					Label:  path,
					Kind:   protocol.CompletionItemKindReference,
					Detail: n.Type.String(),
				})
			}
			return true, nil
		})
	}
	return res, nil
}

// nodeAtPosition finds the node at an LSP position, which is 0-based.
func nodeAtPosition(root *ir.Node, pos protocol.Position) *ir.Node {
	return root.Find(int(pos.Line)+1, int(pos.Character)+1)
}

// refOf returns the reference node refers to, if any: the reference of a
// !$ tag or the first one in a string.
func refOf(node *ir.Node) string {
	switch {
	case node == nil:
		return ""
	case ir.IsRefTag(node.Tag):
		return ir.TagName(node.Tag)
	case node.Type == ir.StringType:
		if refs := resolve.FindAll(node.String); len(refs) != 0 {
			return refs[0]
		}
	}
	return ""
}

// refPath renders the path of node as reference segments, or "" when a
// key cannot be written in a reference.
func refPath(node *ir.Node) string {
	var segs []string
	for n := node; n.Parent != nil; n = n.Parent {
		seg := n.ParentField
		if n.Parent.Type == ir.ArrayType {
			seg = fmt.Sprint(n.ParentIndex)
		}
		if !resolve.IsFullMatch("$" + seg) {
			return ""
		}
		segs = append(segs, seg)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, ".")
}

func charBefore(content string, pos protocol.Position) byte {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return 0
	}
	line := lines[pos.Line]
	if pos.Character == 0 || int(pos.Character) > len(line) {
		return 0
	}
	return line[pos.Character-1]
}

func (s *Server) buildHoverText(doc *document, node *ir.Node) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("**Type:** %s", getTypeInfo(node)))
	if p := node.KPath(); p != "" {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", p))
	}
	if node.Tag != "" {
		parts = append(parts, fmt.Sprintf("**Tag:** `%s`", node.Tag))
		if c := s.reg.Lookup(ir.TagName(node.Tag)); c != nil {
			parts = append(parts, fmt.Sprintf("**Constructor:** `!%s`", c.Signature()))
		}
	}
	if valueInfo := getValueInfo(node); valueInfo != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", valueInfo))
	}
	if ref := hoverRef(node); ref != "" {
		parts = append(parts, s.resolvedInfo(doc, ref))
	}
	return strings.Join(parts, "\n\n")
}

func hoverRef(node *ir.Node) string {
	if ir.IsRefTag(node.Tag) {
		return ir.TagName(node.Tag)
	}
	if node.Type == ir.StringType && resolve.HasRef(node.String) {
		return node.String
	}
	return ""
}

func (s *Server) resolvedInfo(doc *document, ref string) string {
	v, err := s.loader.Resolve(doc.node, ref)
	if err != nil {
		return fmt.Sprintf("**Resolves to:** error: %v", err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeValue(v, buf, encode.EncodeWire(true)); err != nil {
		return fmt.Sprintf("**Resolves to:** %v", v)
	}
	return fmt.Sprintf("**Resolves to:** `%s`", strings.TrimSpace(buf.String()))
}

func getTypeInfo(node *ir.Node) string {
	switch node.Type {
	case ir.NumberType:
		if node.Int64 != nil {
			return "integer"
		}
		return "float"
	}
	return strings.ToLower(node.Type.String())
}

func getValueInfo(node *ir.Node) string {
	switch node.Type {
	case ir.BoolType:
		return fmt.Sprintf("`%t`", node.Bool)
	case ir.NumberType:
		return "`" + encode.NumberString(node) + "`"
	case ir.StringType:
		if node.String != "" {
			val := node.String
			if len(val) > 50 {
				val = val[:50] + "..."
			}
			return fmt.Sprintf("`%s`", val)
		}
	case ir.ArrayType:
		return fmt.Sprintf("sequence with %d elements", len(node.Values))
	case ir.ObjectType:
		return fmt.Sprintf("mapping with %d keys", len(node.Fields))
	}
	return ""
}

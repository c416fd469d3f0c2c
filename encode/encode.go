// Package encode writes document trees and realized values as text.
package encode

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/xyaml/ir"
	yamlv3 "gopkg.in/yaml.v3"
)

// Encode writes node as YAML, keeping its tags. With the JSON format only
// the data is written.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.format.IsJSON() {
		return EncodeValue(ir.ToAny(node), w, opts...)
	}
	e := &encoder{EncState: es, buf: bytes.NewBuffer(nil)}
	if es.wire {
		e.flow(node)
	} else {
		e.top(node)
	}
	e.buf.WriteByte('\n')
	_, err := w.Write(e.buf.Bytes())
	return err
}

// EncodeValue writes a realized value tree. Mappings should be
// yaml.MapSlice to keep their order.
func EncodeValue(v any, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	yOpts := []yaml.EncodeOption{yaml.Indent(es.indent), yaml.IndentSequence(true)}
	if es.format.IsJSON() {
		yOpts = append(yOpts, yaml.JSON())
	} else if es.wire {
		yOpts = append(yOpts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, yOpts...)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(d, []byte{'\n'}) {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}

type encoder struct {
	*EncState
	buf *bytes.Buffer
}

func (e *encoder) color(t ir.Type, a ColorAttr, s string) string {
	if e.Color == nil {
		return s
	}
	return e.Color(t, a, s)
}

func (e *encoder) tag(node *ir.Node) string {
	attr := TagColor
	if ir.IsRefTag(node.Tag) {
		attr = RefColor
	}
	return e.color(node.Type, attr, node.Tag)
}

func (e *encoder) nl(indent int) {
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(" ", indent))
}

func isBlock(node *ir.Node) bool {
	switch node.Type {
	case ir.ObjectType:
		return len(node.Fields) != 0
	case ir.ArrayType:
		return len(node.Values) != 0
	}
	return false
}

func (e *encoder) top(node *ir.Node) {
	if !isBlock(node) {
		e.inline(node)
		return
	}
	if node.Tag != "" {
		e.buf.WriteString(e.tag(node))
		e.buf.WriteByte('\n')
	}
	e.children(node, 0)
}

// children writes the entries of a non-empty container, the first one at
// the current position and the rest on new lines at indent.
func (e *encoder) children(node *ir.Node, indent int) {
	sep := e.color(node.Type, SepColor, ":")
	if node.Type == ir.ArrayType {
		sep = e.color(node.Type, SepColor, "-")
	}
	for i, v := range node.Values {
		if i != 0 {
			e.nl(indent)
		}
		if node.Type == ir.ObjectType {
			e.buf.WriteString(e.color(ir.ObjectType, FieldColor, quote(node.Fields[i].String, false)))
		}
		e.buf.WriteString(sep)
		e.after(v, indent)
	}
}

// after writes v following "key:" or "-".
func (e *encoder) after(v *ir.Node, indent int) {
	if !isBlock(v) {
		if v.Type == ir.NullType && v.Tag != "" {
			e.buf.WriteByte(' ')
			e.buf.WriteString(e.tag(v))
			return
		}
		e.buf.WriteByte(' ')
		e.inline(v)
		return
	}
	if v.Tag != "" {
		e.buf.WriteByte(' ')
		e.buf.WriteString(e.tag(v))
	}
	if v.Type == ir.ObjectType && v.Tag == "" && v.Parent != nil && v.Parent.Type == ir.ArrayType {
		e.buf.WriteByte(' ')
		e.children(v, indent+e.indent)
		return
	}
	e.nl(indent + e.indent)
	e.children(v, indent+e.indent)
}

// inline writes a scalar or empty container, with its tag.
func (e *encoder) inline(node *ir.Node) {
	if node.Tag != "" {
		e.buf.WriteString(e.tag(node))
		e.buf.WriteByte(' ')
	}
	e.buf.WriteString(e.color(node.Type, ValueColor, scalarString(node, false)))
}

func (e *encoder) flow(node *ir.Node) {
	if node.Tag != "" {
		e.buf.WriteString(e.tag(node))
		e.buf.WriteByte(' ')
	}
	switch node.Type {
	case ir.ObjectType:
		e.buf.WriteByte('{')
		for i, f := range node.Fields {
			if i != 0 {
				e.buf.WriteString(", ")
			}
			e.buf.WriteString(e.color(ir.ObjectType, FieldColor, quote(f.String, true)))
			e.buf.WriteString(e.color(ir.ObjectType, SepColor, ":"))
			e.buf.WriteByte(' ')
			e.flow(node.Values[i])
		}
		e.buf.WriteByte('}')
	case ir.ArrayType:
		e.buf.WriteByte('[')
		for i, v := range node.Values {
			if i != 0 {
				e.buf.WriteString(", ")
			}
			e.flow(v)
		}
		e.buf.WriteByte(']')
	default:
		e.buf.WriteString(e.color(node.Type, ValueColor, scalarString(node, true)))
	}
}

func scalarString(node *ir.Node, flow bool) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(node.Bool)
	case ir.NumberType:
		return NumberString(node)
	case ir.StringType:
		return quote(node.String, flow)
	case ir.ObjectType:
		return "{}"
	case ir.ArrayType:
		return "[]"
	}
	return ""
}

// NumberString formats a number node so that it reads back as the same
// kind of number.
func NumberString(node *ir.Node) string {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		return FloatString(*node.Float64)
	}
	return node.Number
}

func FloatString(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote returns s as a plain scalar when that reads back as the same
// string, and double quoted otherwise.
func quote(s string, flow bool) string {
	if needsQuote(s, flow) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string, flow bool) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return true
	}
	if strings.ContainsAny(s[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return true
	}
	if flow && strings.ContainsAny(s, ",[]{}") {
		return true
	}
	for _, r := range s {
		if r < ' ' || r == 0x7f {
			return true
		}
	}
	n := yamlv3.Node{Kind: yamlv3.ScalarNode, Value: s}
	return n.ShortTag() != "!!str"
}

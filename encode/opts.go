package encode

import (
	"github.com/signadot/xyaml/format"
	"github.com/signadot/xyaml/ir"
)

type EncodeOption func(*EncState)

// EncState holds the settings of one encoding.
type EncState struct {
	format format.Format
	indent int
	wire   bool
	Color  func(t ir.Type, a ColorAttr, s string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	return newEncState(opts).format
}

// Indent sets the number of spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EncodeWire writes everything on one line using flow style.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

package encode

import (
	"github.com/signadot/xyaml/ir"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	TagColor ColorAttr = iota
	RefColor
	FieldColor
	ValueColor
	SepColor
)

// Colors paints the parts of encoded output. A part is looked up by its
// attribute and node type first, then by attribute alone.
type Colors struct {
	byType map[ColorAttr]map[ir.Type]*color.Color
	byAttr map[ColorAttr]*color.Color
}

func NewColors() *Colors {
	return &Colors{
		byAttr: map[ColorAttr]*color.Color{
			TagColor:   color.RGB(74, 92, 138),
			RefColor:   color.RGB(196, 168, 128),
			FieldColor: color.RGB(128, 168, 196),
			SepColor:   color.RGB(255, 0, 196),
		},
		byType: map[ColorAttr]map[ir.Type]*color.Color{
			ValueColor: {
				ir.NumberType: color.RGB(128, 216, 236),
				ir.NullType:   color.RGB(168, 0, 196),
				ir.BoolType:   color.New(color.FgCyan),
				ir.StringType: color.RGB(8, 196, 16),
			},
			SepColor: {
				ir.ObjectType: color.RGB(196, 128, 128),
			},
		},
	}
}

// Color paints s, leaving it unchanged when nothing is set for t and a.
func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	if p := c.byType[a][t]; p != nil {
		return p.Sprint(s)
	}
	if p := c.byAttr[a]; p != nil {
		return p.Sprint(s)
	}
	return s
}

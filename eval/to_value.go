package eval

import (
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"
)

var toValueSym = &Constructor{
	Name:   toValueName,
	Params: []Param{{Name: "text"}},
	New:    toValue,
}

func ToValue() *Constructor {
	return toValueSym
}

const (
	toValueName = "tovalue"
)

// toValue parses a string as a document and returns its plain data; tags
// in the text are not interpreted.
func toValue(args Args) (any, error) {
	text, err := args.String("text")
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return ir.ToAny(node), nil
}

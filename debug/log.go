package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"
	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/ir"
)

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// Logf writes to stderr. Nodes are rendered as YAML, plain data as flow
// YAML.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case *ir.Node:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = buf.String()
		case map[string]any, []any, yaml.MapSlice:
			d, err := yaml.MarshalWithOptions(a, yaml.Flow(true))
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(bytes.TrimSpace(d))
		case bool, string, float64, int, int64:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Dump writes a detailed rendering of v to stderr, including the
// concrete types of constructed values.
func Dump(label string, v any) {
	fmt.Fprintf(os.Stderr, "%s: %s", label, dumper.Sdump(v))
}

package eval

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/signadot/xyaml/encode"
)

var toStringSym = &Constructor{
	Name:   toStringName,
	Params: []Param{{Name: "value"}},
	New:    toString,
}

func ToString() *Constructor {
	return toStringSym
}

const (
	toStringName = "tostring"
)

func toString(args Args) (any, error) {
	return Stringify(args.Get("value"))
}

// Stringify renders a realized value as text. Containers are written as
// flow YAML.
func Stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return encode.FloatString(x), nil
	case fmt.Stringer:
		return x.String(), nil
	case yaml.MapSlice, []any, map[string]any:
		buf := bytes.NewBuffer(nil)
		if err := encode.EncodeValue(x, buf, encode.EncodeWire(true)); err != nil {
			return "", err
		}
		return string(bytes.TrimSpace(buf.Bytes())), nil
	}
	return fmt.Sprint(v), nil
}

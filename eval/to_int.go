package eval

import (
	"fmt"
	"strconv"
	"strings"
)

var toIntSym = &Constructor{
	Name:   toIntName,
	Params: []Param{{Name: "value"}},
	New:    toInt,
}

func ToInt() *Constructor {
	return toIntSym
}

const (
	toIntName = "toint"
)

func toInt(args Args) (any, error) {
	switch x := args.Get("value").(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 0, 64)
	default:
		return nil, fmt.Errorf("cannot translate %T to int", x)
	}
}

package eval

import (
	"os"
	"strings"
)

var osenvSym = &Constructor{
	Name:   osenvName,
	Params: []Param{{Name: "name"}, {Name: "default", Optional: true}},
	New:    osenv,
}

func OSEnv() *Constructor {
	return osenvSym
}

const (
	osenvName = "osenv"
)

func osenv(args Args) (any, error) {
	name, err := args.String("name")
	if err != nil {
		return nil, err
	}
	v, ok := os.LookupEnv(strings.TrimSpace(name))
	if !ok {
		if def, present := args.Lookup("default"); present {
			return def, nil
		}
	}
	return v, nil
}

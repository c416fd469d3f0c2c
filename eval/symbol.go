package eval

import (
	"strings"
)

// Param is a declared constructor parameter.
type Param struct {
	Name     string
	Optional bool
}

// Constructor builds a value from bound arguments.
type Constructor struct {
	Name   string
	Params []Param
	// Rest accepts keyword arguments not named in Params.
	Rest bool
	New  func(args Args) (any, error)
}

func (c *Constructor) String() string {
	return c.Name
}

// Required returns the number of non optional parameters.
func (c *Constructor) Required() int {
	n := 0
	for _, p := range c.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

func (c *Constructor) param(name string) *Param {
	for i := range c.Params {
		if c.Params[i].Name == name {
			return &c.Params[i]
		}
	}
	return nil
}

// Signature renders the parameters, e.g. "osenv(name, default?)".
func (c *Constructor) Signature() string {
	parts := make([]string, 0, len(c.Params)+1)
	for _, p := range c.Params {
		if p.Optional {
			parts = append(parts, p.Name+"?")
			continue
		}
		parts = append(parts, p.Name)
	}
	if c.Rest {
		parts = append(parts, "...")
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

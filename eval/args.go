package eval

import (
	"fmt"
)

// Args are the bound arguments of one construction, in binding order.
type Args struct {
	names  []string
	values map[string]any
}

func (a *Args) set(name string, v any) {
	if a.values == nil {
		a.values = map[string]any{}
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

func (a Args) Get(name string) any {
	return a.values[name]
}

func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

func (a Args) Names() []string {
	return append([]string(nil), a.names...)
}

func (a Args) Len() int {
	return len(a.names)
}

// Map returns a copy of the arguments keyed by name.
func (a Args) Map() map[string]any {
	res := make(map[string]any, len(a.names))
	for _, n := range a.names {
		res[n] = a.values[n]
	}
	return res
}

// String returns the named argument, which must be a string when present.
func (a Args) String(name string) (string, error) {
	v, ok := a.values[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected a string, got %T", name, v)
	}
	return s, nil
}

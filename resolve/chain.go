package resolve

import "strings"

// Chain is the ordered list of strings visited while resolving one
// reference. Each hop adds the string it resolved: a reference for a full
// match, the whole string for an interpolation.
type Chain []string

func (c Chain) Contains(s string) bool {
	for _, x := range c {
		if x == s {
			return true
		}
	}
	return false
}

// With returns a new chain with s appended; c is left unchanged.
func (c Chain) With(s string) Chain {
	res := make(Chain, len(c), len(c)+1)
	copy(res, c)
	return append(res, s)
}

func (c Chain) String() string {
	return strings.Join(c, " -> ")
}

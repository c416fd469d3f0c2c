package resolve

import (
	"regexp"
	"strings"
)

// A reference is the marker followed by dot separated word segments, e.g.
// $model.layers.0
var refRE = regexp.MustCompile(`\$\w+(?:\.\w+)*`)

// HasRef reports whether s contains a reference.
func HasRef(s string) bool {
	return refRE.MatchString(s)
}

// IsFullMatch reports whether s is exactly one reference.
func IsFullMatch(s string) bool {
	loc := refRE.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// FindAll returns the references in s in order of appearance.
func FindAll(s string) []string {
	return refRE.FindAllString(s, -1)
}

// Segments splits a reference into its path segments.
func Segments(ref string) []string {
	return strings.Split(strings.TrimPrefix(ref, "$"), ".")
}

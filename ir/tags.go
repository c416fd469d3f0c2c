package ir

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// TagMarker starts every tag.
	TagMarker = '!'
	// RefMarker starts a reference, both in tags (!$a.b) and in strings.
	RefMarker = '$'
)

// TagName strips the tag marker from tag.
func TagName(tag string) string {
	return strings.TrimPrefix(tag, string(TagMarker))
}

// IsRefTag reports whether tag names a reference rather than a constructor.
func IsRefTag(tag string) bool {
	return strings.ContainsRune(TagName(tag), RefMarker)
}

// CheckTag validates the syntax of a tag.
func CheckTag(tag string) error {
	if len(tag) == 0 || tag[0] != TagMarker {
		return fmt.Errorf("tag %q does not start with %q", tag, TagMarker)
	}
	name := tag[1:]
	if name == "" {
		return fmt.Errorf("empty tag")
	}
	if i := strings.IndexFunc(name, unicode.IsSpace); i != -1 {
		return fmt.Errorf("tag %q contains whitespace", tag)
	}
	return nil
}

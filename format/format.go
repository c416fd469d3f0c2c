// Package format names the text formats documents and values are written in.
package format

import (
	"errors"
	"fmt"
	"strings"
)

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var names = [...]string{
	YAMLFormat: "yaml",
	JSONFormat: "json",
}

// ParseFormat accepts a format name or its first letter.
func ParseFormat(v string) (Format, error) {
	v = strings.ToLower(v)
	for f, name := range names {
		if v == name || v == name[:1] {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) valid() bool {
	return f >= 0 && int(f) < len(names)
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("<format %d>", int(f))
	}
	return names[f]
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(names[f]), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }

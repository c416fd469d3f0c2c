package resolve

import (
	"errors"
	"fmt"
)

var (
	ErrMissingReference      = errors.New("missing reference")
	ErrCircularReference     = errors.New("circular reference")
	ErrReferenceChainTooLong = errors.New("reference chain too long")
)

// Error describes a failed resolution.
type Error struct {
	// Ref is the reference or interpolated string being resolved.
	Ref string
	// Segment is the first path segment that could not be found, and Path
	// the segments before it.
	Segment string
	Path    string
	Chain   Chain
	Err     error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingReference):
		under := "the document root"
		if e.Path != "" {
			under = fmt.Sprintf("%q", e.Path)
		}
		msg := fmt.Sprintf("%s: %s: no %q under %s", e.Err, e.Ref, e.Segment, under)
		if len(e.Chain) != 0 {
			msg += " (via " + e.Chain.String() + ")"
		}
		return msg
	default:
		return fmt.Sprintf("%s: %s", e.Err, e.Chain.With(e.Ref))
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

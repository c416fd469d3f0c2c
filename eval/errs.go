package eval

import (
	"errors"
	"strings"
)

var (
	ErrSymbolExists       = errors.New("symbol exists")
	ErrBadConstructor     = errors.New("bad constructor")
	ErrUnknownConstructor = errors.New("unknown constructor")
	ErrArgumentBinding    = errors.New("argument binding error")
	ErrConstructorFailed  = errors.New("constructor failed")
)

// Error reports a construction failure at a document path. It matches
// both its kind and its cause with errors.Is.
type Error struct {
	Tag   string
	Path  string
	Err   error
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString("at " + e.Path + ": ")
	}
	if e.Tag != "" {
		b.WriteString("!" + e.Tag + ": ")
	}
	b.WriteString(e.Err.Error())
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	ErrMalformedDocument = errors.New("malformed document")

	ErrSyntax       = fmt.Errorf("%w: syntax error", ErrMalformedDocument)
	ErrKeyTag       = fmt.Errorf("%w: key cannot be tagged", ErrMalformedDocument)
	ErrKeyType      = fmt.Errorf("%w: key must be a scalar", ErrMalformedDocument)
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrMalformedDocument)
	ErrBadTag       = fmt.Errorf("%w: bad tag", ErrMalformedDocument)
	ErrRefBody      = fmt.Errorf("%w: reference tag with a value", ErrMalformedDocument)
	ErrAlias        = fmt.Errorf("%w: alias", ErrMalformedDocument)
	ErrTooDeep      = fmt.Errorf("%w: nesting too deep", ErrMalformedDocument)
	ErrNotMapping   = fmt.Errorf("%w: overrides must be a mapping", ErrMalformedDocument)
)

// Error locates a parse failure in the source text.
type Error struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Err, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Err, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var lineRE = regexp.MustCompile(`line (\d+)`)

// syntaxError wraps a yaml.v3 decoding error, recovering the line number
// from its message.
func syntaxError(err error) *Error {
	res := &Error{Msg: err.Error(), Err: ErrSyntax}
	if m := lineRE.FindStringSubmatch(res.Msg); m != nil {
		res.Line, _ = strconv.Atoi(m[1])
	}
	return res
}

package xyaml

import (
	"github.com/signadot/xyaml/eval"
	"github.com/signadot/xyaml/parse"
	"github.com/signadot/xyaml/resolve"
)

// Error kinds reported by Load. Test with errors.Is.
var (
	ErrMalformedDocument     = parse.ErrMalformedDocument
	ErrMissingReference      = resolve.ErrMissingReference
	ErrCircularReference     = resolve.ErrCircularReference
	ErrReferenceChainTooLong = resolve.ErrReferenceChainTooLong
	ErrUnknownConstructor    = eval.ErrUnknownConstructor
	ErrArgumentBinding       = eval.ErrArgumentBinding
	ErrConstructorFailed     = eval.ErrConstructorFailed
)

// PathError locates a failure on the node at Path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	p := e.Path
	if p == "" {
		p = "the document root"
	}
	return "at " + p + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

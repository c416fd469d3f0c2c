package ir

import "errors"

var (
	ErrNotMapping = errors.New("not a mapping")
	ErrBadValue   = errors.New("unsupported value")
)

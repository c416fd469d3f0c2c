package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/xyaml/debug"
	"github.com/signadot/xyaml/ir"
)

// Dispatcher realizes tagged nodes.
type Dispatcher struct {
	Registry *Registry
	// Resolve resolves a reference tag against the document root with a
	// fresh context.
	Resolve func(ref string) (any, error)
}

// Construct realizes node, which carries tag and whose children have
// already been realized into body. Reference tags are resolved; other
// tags name a registered constructor.
func (d *Dispatcher) Construct(tag string, node *ir.Node, body any) (any, error) {
	name := ir.TagName(tag)
	if ir.IsRefTag(tag) {
		if d.Resolve == nil {
			return nil, fmt.Errorf("reference tag !%s at %s: no resolver", name, node.KPath())
		}
		if debug.Construct() {
			debug.Logf("reference !%s at %s\n", name, node.KPath())
		}
		return d.Resolve(name)
	}
	c := d.Registry.Lookup(name)
	if c == nil {
		return nil, &Error{Tag: name, Path: node.KPath(), Err: ErrUnknownConstructor}
	}
	args, err := Bind(c, body)
	if err != nil {
		var bErr *Error
		if errors.As(err, &bErr) {
			bErr.Path = node.KPath()
		}
		return nil, err
	}
	if debug.Construct() {
		debug.Logf("construct %s at %s with %v\n", c.Signature(), node.KPath(), args.Map())
	}
	v, err := c.New(args)
	if err != nil {
		return nil, &Error{Tag: name, Path: node.KPath(), Err: ErrConstructorFailed, Cause: err}
	}
	return v, nil
}

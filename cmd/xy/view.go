package main

import (
	"io"

	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cc.Out, cc.In, args, func(w io.Writer, doc []byte) error {
		node, err := parse.Parse(doc, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		return encode.Encode(node, w, opts...)
	})
}

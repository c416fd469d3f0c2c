package main

import (
	"io"

	"github.com/signadot/xyaml/encode"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	over, err := overrides(cfg.File, cfg.Env, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	loader := cfg.loader(cfg.TagsOnly, cfg.MaxHops)
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cc.Out, cc.In, args, func(w io.Writer, doc []byte) error {
		v, err := loader.Load(doc, over)
		if err != nil {
			return err
		}
		return encode.EncodeValue(v, w, opts...)
	})
}

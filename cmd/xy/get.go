package main

import (
	"fmt"
	"io"

	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/parse"
	"github.com/signadot/xyaml/resolve"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a reference", cli.ErrUsage)
	}
	ref := args[0]
	if ref == "" {
		return fmt.Errorf("%w: invalid reference \"\"", cli.ErrUsage)
	}
	if ref[0] != '$' {
		ref = "$" + ref
	}
	if !resolve.IsFullMatch(ref) {
		return fmt.Errorf("%w: invalid reference %q", cli.ErrUsage, ref)
	}
	over, err := overrides(cfg.File, cfg.Env, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	loader := cfg.loader(cfg.TagsOnly, 0)
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cc.Out, cc.In, args[1:], func(w io.Writer, d []byte) error {
		doc, err := parse.Parse(d, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		doc, err = loader.Merge(doc, over)
		if err != nil {
			return err
		}
		v, err := loader.Resolve(doc, ref)
		if err != nil {
			return err
		}
		return encode.EncodeValue(v, w, opts...)
	})
}

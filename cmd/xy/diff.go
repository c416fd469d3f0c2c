package main

import (
	"fmt"
	"io"

	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/libdiff"
	"github.com/signadot/xyaml/parse"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	over, err := overrides(cfg.File, cfg.Env, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	if over == nil {
		return fmt.Errorf("%w: diff requires overrides, -e or -f", cli.ErrUsage)
	}
	color := cfg.useColor(cc.Out)
	rOpts := []libdiff.RenderOption{libdiff.Colors(color)}
	if cfg.Context > 0 {
		rOpts = append(rOpts, libdiff.Context(cfg.Context))
	}
	return eachDoc(cc.Out, cc.In, args, func(w io.Writer, d []byte) error {
		doc, err := parse.Parse(d, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		before := doc.Clone()
		after, err := ir.Merge(doc, over)
		if err != nil {
			return fmt.Errorf("%w: %w", parse.ErrMalformedDocument, err)
		}
		if cfg.Paths {
			return writeChanges(w, libdiff.Nodes(before, after))
		}
		lines := libdiff.Lines(encode.MustString(before)+"\n", encode.MustString(after)+"\n")
		return libdiff.Render(w, lines, rOpts...)
	})
}

func writeChanges(w io.Writer, changes []libdiff.Change) error {
	for _, c := range changes {
		var err error
		switch c.Op {
		case libdiff.Insert:
			_, err = fmt.Fprintf(w, "+ %s: %s\n", c.Path, encode.MustString(c.To, encode.EncodeWire(true)))
		case libdiff.Delete:
			_, err = fmt.Fprintf(w, "- %s\n", c.Path)
		case libdiff.Retag:
			_, err = fmt.Fprintf(w, "~ %s: %q -> %q\n", c.Path, c.From.Tag, c.To.Tag)
		default:
			_, err = fmt.Fprintf(w, "~ %s: %s -> %s\n", c.Path,
				encode.MustString(c.From, encode.EncodeWire(true)),
				encode.MustString(c.To, encode.EncodeWire(true)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

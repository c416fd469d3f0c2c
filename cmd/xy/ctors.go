package main

import (
	"fmt"

	"github.com/signadot/xyaml/eval"

	"github.com/scott-cotton/cli"
)

func ctors(cfg *CtorsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Ctors.Parse(cc, args); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "available constructor tags:\n")
	for _, c := range eval.Builtins().Symbols() {
		fmt.Fprintf(cc.Out, "\t- !%s\n", c.Signature())
	}
	return nil
}

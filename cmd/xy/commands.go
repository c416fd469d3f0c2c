package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts := structOpts(cfg,
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		})

	return cli.NewCommandAt(&cfg.Main, "xy").
		WithSynopsis("xy [opts] command [opts]").
		WithDescription("xy loads YAML documents with references and constructor tags.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xyMain(cfg, cc, args)
		}).
		WithSubs(
			LoadCommand(cfg),
			ViewCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg),
			CtorsCommand(cfg))
}

// structOpts returns the options declared by cfg's struct tags followed
// by extra.
func structOpts(cfg any, extra ...*cli.Opt) []*cli.Opt {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return append(opts, extra...)
}

// sub is the description of a subcommand. Its command is stored in *at so
// the run func can parse its own options.
type sub struct {
	name, alias string
	synopsis    string
	desc        string
	opts        []*cli.Opt
	at          **cli.Command
	run         func(cc *cli.Context, args []string) error
}

func (s *sub) command() *cli.Command {
	cmd := cli.NewCommand(s.name).
		WithSynopsis(s.synopsis).
		WithDescription(s.desc).
		WithRun(s.run)
	if s.alias != "" {
		cmd = cmd.WithAliases(s.alias)
	}
	if len(s.opts) != 0 {
		cmd = cmd.WithOpts(s.opts...)
	}
	*s.at = cmd
	return cmd
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	return (&sub{
		name:     "load",
		alias:    "l",
		synopsis: "load [-e path=val]... [-f overrides] [files]",
		desc:     "load documents, resolving references and running constructors",
		opts:     structOpts(cfg, envOpt(&cfg.Env)),
		at:       &cfg.Load,
		run: func(cc *cli.Context, args []string) error {
			return load(cfg, cc, args)
		},
	}).command()
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return (&sub{
		name:     "view",
		alias:    "v",
		synopsis: "view [files]",
		desc:     "view documents with tags in color",
		opts:     structOpts(cfg),
		at:       &cfg.View,
		run: func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		},
	}).command()
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return (&sub{
		name:     "get",
		alias:    "g",
		synopsis: "get [-e path=val]... <$ref> [files]",
		desc:     "resolve one reference in each document",
		opts:     structOpts(cfg, envOpt(&cfg.Env)),
		at:       &cfg.Get,
		run: func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		},
	}).command()
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return (&sub{
		name:     "diff",
		alias:    "d",
		synopsis: "diff [-e path=val]... [-f overrides] [files]",
		desc:     "show what overrides change in each document",
		opts:     structOpts(cfg, envOpt(&cfg.Env)),
		at:       &cfg.Diff,
		run: func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		},
	}).command()
}

func CtorsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CtorsConfig{MainConfig: mainCfg}
	return (&sub{
		name:     "ctors",
		synopsis: "ctors",
		desc:     "list available constructor tags",
		at:       &cfg.Ctors,
		run: func(cc *cli.Context, args []string) error {
			return ctors(cfg, cc, args)
		},
	}).command()
}

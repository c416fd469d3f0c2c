package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/xyaml"
	"github.com/signadot/xyaml/encode"
	"github.com/signadot/xyaml/eval"
	"github.com/signadot/xyaml/format"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color     bool `cli:"name=color desc='encode with color'"`
	WireOut   bool `cli:"name=wire desc='output in compact format'"`
	NoAliases bool `cli:"name=no-aliases desc='reject YAML aliases'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	var res []parse.ParseOption
	if cfg.NoAliases {
		res = append(res, parse.NoAliases())
	}
	return res
}

func (cfg *MainConfig) encFormat() format.Format {
	f := format.YAMLFormat
	if cfg.J {
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

// useColor reports whether output to w should be colored: when asked
// for, or by default when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.encFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func envOpt(env *[]string) *cli.Opt {
	return &cli.Opt{
		Name:        "e",
		Description: "override the value at a dotted path",
		Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
			*env = append(*env, a)
			return 0, nil
		}), "(path=val)"),
	}
}

// overrides returns the override tree, or nil when none was given. env
// overrides apply over the file.
func overrides(file string, env []string, opts ...parse.ParseOption) (*ir.Node, error) {
	var res *ir.Node
	if file != "" {
		d, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("could not read overrides: %w", err)
		}
		res, err = parse.ParseOverrides(d, opts...)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", file, err)
		}
	}
	if len(env) == 0 {
		return res, nil
	}
	over, err := xyaml.OverridesFromArgs(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if res == nil {
		return over, nil
	}
	return ir.Merge(res, over)
}

func (cfg *MainConfig) loader(tagsOnly bool, maxHops int) *xyaml.Loader {
	opts := []xyaml.Option{
		xyaml.PlainReferences(!tagsOnly),
		xyaml.ParseOptions(cfg.parseOpts()...),
	}
	if maxHops > 0 {
		opts = append(opts, xyaml.MaxHops(maxHops))
	}
	return xyaml.NewLoader(eval.Builtins(), opts...)
}

type LoadConfig struct {
	*MainConfig

	File     string `cli:"name=f desc='overrides file'"`
	TagsOnly bool   `cli:"name=tags-only desc='only resolve !$ reference tags'"`
	MaxHops  int    `cli:"name=max-hops desc='maximum reference chain length'"`
	Env      []string

	Load *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	File     string `cli:"name=f desc='overrides file'"`
	TagsOnly bool   `cli:"name=tags-only desc='only resolve !$ reference tags'"`
	Env      []string

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig

	File    string `cli:"name=f desc='overrides file'"`
	Paths   bool   `cli:"name=paths desc='list changed paths instead of lines'"`
	Context int    `cli:"name=U desc='lines of context around changes, all when 0'"`
	Env     []string

	Diff *cli.Command
}

type CtorsConfig struct {
	*MainConfig

	Ctors *cli.Command
}

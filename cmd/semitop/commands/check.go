package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/latticegen/semiframe/diagnostics"
	"github.com/latticegen/semiframe/eval"
	"github.com/latticegen/semiframe/family"
	"github.com/latticegen/semiframe/macro"
	"github.com/latticegen/semiframe/parser"
)

type checkConfig struct {
	*cli.Command
	N         int  `cli:"name=n desc='ground-set size'"`
	VerifySAT bool `cli:"name=verify-sat desc='cross-check against the SAT circuit'"`
}

// CheckCommand returns the check subcommand.
func CheckCommand() *cli.Command {
	cfg := &checkConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check <family> <formula> -n N - evaluate a formula against a family").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: semitop check <family> <formula> -n N", cli.ErrUsage)
	}
	if cfg.N <= 0 {
		return fmt.Errorf("%w: -n must be positive", cli.ErrUsage)
	}

	f, err := family.Parse(args[0], cfg.N)
	if err != nil {
		return err
	}
	prop, err := parser.Parse(args[1])
	if err != nil {
		return err
	}
	expanded, err := macro.Expand(prop)
	if err != nil {
		return err
	}

	ev := eval.New(cfg.N, f)
	var res eval.Result
	if cfg.VerifySAT {
		res, err = eval.CrossCheck(ev, expanded)
	} else {
		res, err = ev.Check(expanded)
	}
	if err != nil {
		return err
	}

	p := diagnostics.PaletteFor(cc.Out)
	fmt.Fprintln(cc.Out, p.FormatResult(cfg.N, res))
	return nil
}

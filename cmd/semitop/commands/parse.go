package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/latticegen/semiframe/eval"
	"github.com/latticegen/semiframe/macro"
	"github.com/latticegen/semiframe/parser"
)

type parseConfig struct {
	*cli.Command
}

// ParseCommand returns the parse subcommand.
func ParseCommand() *cli.Command {
	cfg := &parseConfig{}
	return cli.NewCommandAt(&cfg.Command, "parse").
		WithSynopsis("parse <formula> - parse and macro-expand a formula").
		WithRun(cfg.run)
}

func (cfg *parseConfig) run(cc *cli.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: semitop parse <formula>", cli.ErrUsage)
	}

	prop, err := parser.Parse(args[0])
	if err != nil {
		return err
	}
	expanded, err := macro.Expand(prop)
	if err != nil {
		return err
	}

	free := eval.FreeVariables(expanded)
	fmt.Fprintln(cc.Out, "parsed and macro-expanded OK")
	if len(free) > 0 {
		fmt.Fprintf(cc.Out, "free variables: %v\n", free)
	} else {
		fmt.Fprintln(cc.Out, "formula is closed")
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/latticegen/semiframe/canon"
	"github.com/latticegen/semiframe/family"
)

type canonConfig struct {
	*cli.Command
	N int `cli:"name=n desc='ground-set size'"`
}

// CanonCommand returns the canon subcommand.
func CanonCommand() *cli.Command {
	cfg := &canonConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "canon").
		WithSynopsis("canon <family> -n N - print the canonical form of a family").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *canonConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: semitop canon <family> -n N", cli.ErrUsage)
	}
	if cfg.N <= 0 {
		return fmt.Errorf("%w: -n must be positive", cli.ErrUsage)
	}

	f, err := family.Parse(args[0], cfg.N)
	if err != nil {
		return err
	}

	c := canon.New(nil)
	fmt.Fprintln(cc.Out, c.Canonicalize(f).String())
	return nil
}

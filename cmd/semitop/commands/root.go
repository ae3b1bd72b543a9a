// Package commands implements semitop's command tree, in the teacher's
// git-issue subcommand style: a root *cli.Command built with
// cli.NewCommand, each subcommand a config struct embedding *cli.Command
// and populated via cli.StructOpts + struct tags.
package commands

import "github.com/scott-cotton/cli"

const usageText = `semitop - union-closed set family enumerator and model checker

Usage:
  semitop generate [flags]           Enumerate semitopologies/semiframes
  semitop canon <family> -n N        Print the canonical form of a family
  semitop check <family> <formula> -n N
                                      Evaluate a formula against a family
  semitop parse <formula>            Parse and macro-expand a formula

Examples:
  semitop generate -mode semiframe -min-n 1 -max-n 3
  semitop canon "{{3},{1,3},{2,3},{1,2,3}}" -n 3
  semitop check "{{1,2},{1,3},{1,2,3}}" "EO X. EP x. x in X" -n 3
  semitop parse "AP p. p = p"`

// Root returns the root command for semitop.
func Root() *cli.Command {
	return cli.NewCommand("semitop").
		WithSynopsis("semitop - union-closed set family enumerator and model checker").
		WithDescription(usageText).
		WithSubs(
			GenerateCommand(),
			CanonCommand(),
			CheckCommand(),
			ParseCommand(),
		)
}

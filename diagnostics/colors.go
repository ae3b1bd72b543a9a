// Package diagnostics renders colorized, position-aware results and
// errors for a terminal, and textual diffs between expected and actual
// family/formula text, per SPEC_FULL.md §2/§5. It follows the teacher's
// own color-table pattern (go-tony/encode/encode_colors.go) and its
// isatty-gated activation (go-tony/cmd/o/configs.go).
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/latticegen/semiframe/eval"
	"github.com/latticegen/semiframe/family"
)

// Palette is a small table of sprint functions, one per semantic role,
// mirroring encode.Colors's Map-of-SprintfFunc shape but keyed by role
// instead of (ir.Type, ColorAttr).
type Palette struct {
	Satisfied    func(string, ...any) string
	NotSatisfied func(string, ...any) string
	Witness      func(string, ...any) string
	ErrorText    func(string, ...any) string
	Plain        func(string, ...any) string
}

func plain(s string, _ ...any) string { return s }

// NewPalette returns a Palette with every role wired to plain pass-through
// formatting — used when color is disabled.
func NewPalette() *Palette {
	return &Palette{
		Satisfied:    plain,
		NotSatisfied: plain,
		Witness:      plain,
		ErrorText:    plain,
		Plain:        plain,
	}
}

// NewColorPalette returns a Palette with every role wired to a distinct
// fatih/color formatter, the same SprintfFunc-table idiom as
// encode.NewColors.
func NewColorPalette() *Palette {
	return &Palette{
		Satisfied:    color.GreenString,
		NotSatisfied: color.RGB(196, 96, 16).SprintfFunc(),
		Witness:      color.RGB(128, 168, 236).SprintfFunc(),
		ErrorText:    color.RedString,
		Plain:        plain,
	}
}

// PaletteFor returns NewColorPalette() when out is a terminal and
// NewPalette() (plain pass-through) otherwise, replicating configs.go's
// isatty.IsTerminal(f.Fd()) gate.
func PaletteFor(out io.Writer) *Palette {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return NewColorPalette()
	}
	return NewPalette()
}

// FormatResult renders a model-check Result as a one-line satisfied/not
// line plus one witness line per bound variable, per spec.md §6's
// "structured satisfied/not plus witness block" output convention.
func (p *Palette) FormatResult(n int, res eval.Result) string {
	var verdict string
	if res.Satisfied {
		verdict = p.Satisfied("SATISFIED")
	} else {
		verdict = p.NotSatisfied("NOT SATISFIED")
	}
	out := verdict
	for v, w := range res.Witnesses {
		if w.Kind == eval.WitnessPoint {
			out += "\n  " + p.Witness("%s = %d", v, w.Point)
		} else {
			out += "\n  " + p.Witness("%s = %s", v, family.FormatOpen(w.Open, n))
		}
	}
	return out
}

// FormatError renders err in the error role, with no position information
// beyond what err's own message already carries (position is baked in by
// token.Pos.String's callers, per SPEC_FULL.md §5's error taxonomy).
func (p *Palette) FormatError(err error) string {
	return p.ErrorText("error: %s", err.Error())
}

// Fprintln writes msg followed by a newline to w — a thin convenience so
// CLI subcommands don't need to import fmt alongside diagnostics just to
// flush a formatted palette string.
func Fprintln(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

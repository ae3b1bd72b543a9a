package diagnostics

import (
	"strings"
	"testing"

	"github.com/latticegen/semiframe/eval"
	"github.com/latticegen/semiframe/family"
)

func TestNewPaletteIsPlain(t *testing.T) {
	p := NewPalette()
	if p.Satisfied("x") != "x" {
		t.Errorf("expected plain pass-through, got %q", p.Satisfied("x"))
	}
}

func TestFormatResultSatisfiedIncludesWitness(t *testing.T) {
	p := NewPalette()
	one, _ := family.ParseOpen("{1,2}", 3)
	res := eval.Result{Satisfied: true, Witnesses: map[string]eval.Witness{
		"X": {Kind: eval.WitnessOpen, Open: one},
	}}
	out := p.FormatResult(3, res)
	if !strings.Contains(out, "SATISFIED") {
		t.Errorf("expected SATISFIED in output, got %q", out)
	}
	if !strings.Contains(out, "X = ") {
		t.Errorf("expected witness line for X, got %q", out)
	}
}

func TestFormatResultNotSatisfied(t *testing.T) {
	p := NewPalette()
	out := p.FormatResult(3, eval.Result{Satisfied: false})
	if !strings.Contains(out, "NOT SATISFIED") {
		t.Errorf("expected NOT SATISFIED in output, got %q", out)
	}
}

func TestEqualReportsIdenticalText(t *testing.T) {
	if !Equal("{{1},{1,2}}", "{{1},{1,2}}") {
		t.Fatal("expected equal")
	}
}

func TestDiffHighlightsDifference(t *testing.T) {
	out := Diff("{{1},{1,2}}", "{{1},{1,3}}")
	if out == "" {
		t.Fatal("expected non-empty diff for differing text")
	}
}

package eval

import (
	"testing"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/family"
	"github.com/latticegen/semiframe/macro"
	"github.com/latticegen/semiframe/parser"
)

func mustCheck(t *testing.T, n int, famText, formula string) Result {
	t.Helper()
	f, err := family.Parse(famText, n)
	if err != nil {
		t.Fatalf("Parse(%q): %v", famText, err)
	}
	prop, err := parser.Parse(formula)
	if err != nil {
		t.Fatalf("parser.Parse(%q): %v", formula, err)
	}
	expanded, err := macro.Expand(prop)
	if err != nil {
		t.Fatalf("macro.Expand(%q): %v", formula, err)
	}
	res, err := New(n, f).Check(expanded)
	if err != nil {
		t.Fatalf("Check(%q): %v", formula, err)
	}
	return res
}

func TestScenarioExistsOpenExistsPointSatisfied(t *testing.T) {
	res := mustCheck(t, 3, "{{1,2},{1,3},{1,2,3}}", "EO X. EP x. x in X")
	if !res.Satisfied {
		t.Fatal("expected satisfied")
	}
	w, ok := res.Witnesses["X"]
	if !ok || w.Kind != WitnessOpen {
		t.Fatalf("expected a witness for X, got %v", res.Witnesses)
	}
}

func TestScenarioForAllOpenForAllPointNotSatisfiedWhenEmptyPresent(t *testing.T) {
	res := mustCheck(t, 3, "{{},{1,2},{1,3},{1,2,3}}", "AO X. AP x. x in X")
	if res.Satisfied {
		t.Fatal("expected not satisfied: ∅ has no points")
	}
}

func TestScenarioReflexivePointEqualityAlwaysSatisfied(t *testing.T) {
	res := mustCheck(t, 3, "{{1},{1,2,3}}", "AP p. p = p")
	if !res.Satisfied {
		t.Fatal("expected satisfied")
	}
}

func TestScenarioDefaultSemitopologyIsSatisfied(t *testing.T) {
	res := mustCheck(t, 3, "{{},{1,2,3}}", "EO X. EP x. x in X")
	if !res.Satisfied {
		t.Fatal("expected satisfied: 1 ∈ {1,2,3}")
	}
}

func TestCommunitySierpinski(t *testing.T) {
	f, err := family.Parse("{{},{1,2},{1,3},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	for p := 1; p <= 3; p++ {
		got := ev.community(p)
		want := family.Full(3)
		if got != want {
			t.Errorf("K(%d) = %s, want %s", p, family.FormatOpen(got, 3), family.FormatOpen(want, 3))
		}
	}
}

func TestCommunityDisconnected(t *testing.T) {
	f, err := family.Parse("{{},{1},{2},{3},{1,2}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	one, _ := family.ParseOpen("{1}", 3)
	two, _ := family.ParseOpen("{2}", 3)
	three, _ := family.ParseOpen("{3}", 3)
	if got := ev.community(1); got != one {
		t.Errorf("K(1) = %s, want {1}", family.FormatOpen(got, 3))
	}
	if got := ev.community(2); got != two {
		t.Errorf("K(2) = %s, want {2}", family.FormatOpen(got, 3))
	}
	if got := ev.community(3); got != three {
		t.Errorf("K(3) = %s, want {3}", family.FormatOpen(got, 3))
	}
}

func TestCommunityDegenerateEmptyFamily(t *testing.T) {
	f := family.Family{N: 2}
	ev := New(2, f)
	if got := ev.community(1); got != 0 {
		t.Errorf("K(1) over empty family = %s, want {}", family.FormatOpen(got, 2))
	}
}

func TestInteriorComplement(t *testing.T) {
	f, err := family.Parse("{{},{1},{2},{1,2}}", 2)
	if err != nil {
		t.Fatal(err)
	}
	one, _ := family.ParseOpen("{1}", 2)
	two, _ := family.ParseOpen("{2}", 2)
	if got := interiorComplement(f, one); got != two {
		t.Errorf("IC({1}) = %s, want {2}", family.FormatOpen(got, 2))
	}
}

func TestCheckRejectsOpenFormula(t *testing.T) {
	f, _ := family.Parse("{{},{1,2}}", 2)
	prop := &ast.AtomicProp{Kind: ast.AtomPointInOpen,
		Point1: &ast.PointExpr{Var: "x"},
		Open1:  &ast.OpenVarExpr{Var: "X"},
	}
	_, err := New(2, f).Check(prop)
	if err == nil {
		t.Fatal("expected ErrNotClosed for a formula with free variables")
	}
}

func TestWitnessCorrectness(t *testing.T) {
	f, err := family.Parse("{{1,2},{1,3},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	prop, err := parser.Parse("EO X. EP x. x in X")
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	res, err := ev.Check(prop)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Satisfied {
		t.Fatal("expected satisfied")
	}
	xw := res.Witnesses["x"]
	Xw := res.Witnesses["X"]
	if xw.Kind != WitnessPoint || Xw.Kind != WitnessOpen {
		t.Fatalf("unexpected witness kinds: %v", res.Witnesses)
	}
	if !Xw.Open.Has(xw.Point) {
		t.Errorf("witness binding is unsound: x=%d not in X=%s", xw.Point, family.FormatOpen(Xw.Open, 3))
	}
}

package eval

import (
	"testing"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/family"
	"github.com/latticegen/semiframe/macro"
	"github.com/latticegen/semiframe/parser"
)

func mustExpand(t *testing.T, formula string) ast.Prop {
	t.Helper()
	prop, err := parser.Parse(formula)
	if err != nil {
		t.Fatalf("parser.Parse(%q): %v", formula, err)
	}
	expanded, err := macro.Expand(prop)
	if err != nil {
		t.Fatalf("macro.Expand(%q): %v", formula, err)
	}
	return expanded
}

func TestVerifySATAgreesWithRecursiveEvaluatorSatisfied(t *testing.T) {
	f, err := family.Parse("{{1,2},{1,3},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	prop := mustExpand(t, "EO X. EP x. x in X")

	want, err := ev.Check(prop)
	if err != nil {
		t.Fatal(err)
	}
	got, err := VerifySAT(ev, prop)
	if err != nil {
		t.Fatal(err)
	}
	if got != want.Satisfied {
		t.Fatalf("VerifySAT=%v, recursive Check=%v", got, want.Satisfied)
	}
}

func TestVerifySATAgreesWithRecursiveEvaluatorUnsatisfied(t *testing.T) {
	f, err := family.Parse("{{},{1,2},{1,3},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	prop := mustExpand(t, "AO X. AP x. x in X")

	want, err := ev.Check(prop)
	if err != nil {
		t.Fatal(err)
	}
	got, err := VerifySAT(ev, prop)
	if err != nil {
		t.Fatal(err)
	}
	if got != want.Satisfied {
		t.Fatalf("VerifySAT=%v, recursive Check=%v", got, want.Satisfied)
	}
}

func TestVerifySATRejectsOpenFormula(t *testing.T) {
	f, _ := family.Parse("{{},{1,2}}", 2)
	prop := &ast.AtomicProp{Kind: ast.AtomPointInOpen,
		Point1: &ast.PointExpr{Var: "x"},
		Open1:  &ast.OpenVarExpr{Var: "X"},
	}
	if _, err := VerifySAT(New(2, f), prop); err == nil {
		t.Fatal("expected ErrNotClosed for a formula with free variables")
	}
}

func TestCrossCheckAgrees(t *testing.T) {
	f, err := family.Parse("{{1},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)
	prop := mustExpand(t, "AP p. p = p")

	res, err := CrossCheck(ev, prop)
	if err != nil {
		t.Fatalf("CrossCheck: %v", err)
	}
	if !res.Satisfied {
		t.Fatal("expected satisfied")
	}
}

func TestFindWitnessMatchesRecursiveWitness(t *testing.T) {
	f, err := family.Parse("{{1,2},{1,3},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)

	openVar := "X"
	pointVar := "x"
	openQ := &ast.QuantProp{Quant: ast.ExistsOpens, Var: openVar}
	pointQ := &ast.QuantProp{Quant: ast.ExistsPoints, Var: pointVar}
	body := &ast.AtomicProp{
		Kind:   ast.AtomPointInOpen,
		Point1: &ast.PointExpr{Var: pointVar},
		Open1:  &ast.OpenVarExpr{Var: openVar},
	}

	res, err := FindWitness(ev, []*ast.QuantProp{openQ, pointQ}, body)
	if err != nil {
		t.Fatalf("FindWitness: %v", err)
	}
	if !res.Satisfied {
		t.Fatal("expected satisfied")
	}
	xw, ok := res.Witnesses[openVar]
	if !ok || xw.Kind != WitnessOpen {
		t.Fatalf("expected an open witness for %s, got %v", openVar, res.Witnesses)
	}
	pw, ok := res.Witnesses[pointVar]
	if !ok || pw.Kind != WitnessPoint {
		t.Fatalf("expected a point witness for %s, got %v", pointVar, res.Witnesses)
	}
	if !xw.Open.Has(pw.Point) {
		t.Fatalf("witness binding is unsound: %s=%d not in %s=%s", pointVar, pw.Point, openVar, family.FormatOpen(xw.Open, 3))
	}
}

func TestFindWitnessUnsatisfiable(t *testing.T) {
	f, err := family.Parse("{{},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	ev := New(3, f)

	// x in X needs X nonempty, but then its negation fails: no (x, X)
	// combination over this family satisfies both conjuncts at once.
	pointVar := "x"
	openVar := "X"
	body := &ast.BinaryProp{
		Op: ast.OpAnd,
		Left: &ast.AtomicProp{
			Kind:   ast.AtomPointInOpen,
			Point1: &ast.PointExpr{Var: pointVar},
			Open1:  &ast.OpenVarExpr{Var: openVar},
		},
		Right: &ast.UnaryProp{Operand: &ast.AtomicProp{
			Kind:  ast.AtomNonempty,
			Open1: &ast.OpenVarExpr{Var: openVar},
		}},
	}
	pointQ := &ast.QuantProp{Quant: ast.ExistsPoints, Var: pointVar}
	openQ := &ast.QuantProp{Quant: ast.ExistsOpens, Var: openVar}

	res, err := FindWitness(ev, []*ast.QuantProp{pointQ, openQ}, body)
	if err != nil {
		t.Fatalf("FindWitness: %v", err)
	}
	if res.Satisfied {
		t.Fatalf("expected unsatisfied, got witnesses %v", res.Witnesses)
	}
}

func TestFindWitnessRejectsNonExistentialBlock(t *testing.T) {
	f, _ := family.Parse("{{},{1,2}}", 2)
	ev := New(2, f)
	q := &ast.QuantProp{Quant: ast.ForAllPoints, Var: "x"}
	body := &ast.AtomicProp{Kind: ast.AtomPointEqual,
		Point1: &ast.PointExpr{Var: "x"},
		Point2: &ast.PointExpr{Var: "x"},
	}
	if _, err := FindWitness(ev, []*ast.QuantProp{q}, body); err == nil {
		t.Fatal("expected an error for a universally quantified block")
	}
}

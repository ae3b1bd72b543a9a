package eval

import "github.com/latticegen/semiframe/family"

// WitnessKind discriminates which sort a Witness binds.
type WitnessKind int

const (
	WitnessPoint WitnessKind = iota
	WitnessOpen
)

// Witness is a concrete binding produced for one existentially quantified
// variable along a satisfying evaluation path, mirroring model_checker.rs's
// Witness enum as an explicit sum-of-optional-fields struct (the same
// pattern the teacher's own ir.Node uses for its discriminated variants).
type Witness struct {
	Kind  WitnessKind
	Point int
	Open  family.Open
}

// Result is the outcome of evaluating a formula: whether it is satisfied,
// plus the witnesses accumulated for every existential quantifier on the
// satisfying path (SPEC_FULL.md §4.6 / spec.md §8 scenario 3).
type Result struct {
	Satisfied bool
	Witnesses map[string]Witness
}

func trueResult() Result  { return Result{Satisfied: true, Witnesses: map[string]Witness{}} }
func falseResult() Result { return Result{Satisfied: false, Witnesses: map[string]Witness{}} }

func (r Result) withWitness(v string, w Witness) Result {
	r.Witnesses[v] = w
	return r
}

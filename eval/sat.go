package eval

import (
	"errors"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/family"
)

// ErrSATMismatch signals that the gini-backed circuit evaluation disagreed
// with the recursive evaluator's verdict for the same formula and family.
// Since every quantifier is unrolled against a finite domain before the
// circuit is handed to gini, the two should never diverge; seeing this
// means one of the two implementations has a bug.
var ErrSATMismatch = errors.New("sat cross-check disagrees with recursive evaluator")

// satBuilder compiles a macro-free, closed ast.Prop into a go-air/gini
// boolean circuit, grounded on go-tony/schema/formula_builder.go's build
// dispatch (AtomicProp plays the role of its leaf getVar calls, quantifiers
// play the role of its buildBooleanArray AND/OR folds). Every point and
// open quantifier is unrolled against the Evaluator's fixed domain before
// reaching the circuit, so every leaf the builder touches is a concrete,
// already-decided ast.AtomicProp rather than a free SAT variable.
type satBuilder struct {
	c  *logic.C
	ev *Evaluator
}

func (b *satBuilder) build(prop ast.Prop, en env) z.Lit {
	switch p := prop.(type) {
	case *ast.AtomicProp:
		if b.ev.evalAtom(p, en) {
			return b.c.T
		}
		return b.c.F

	case *ast.UnaryProp:
		return b.build(p.Operand, en).Not()

	case *ast.BinaryProp:
		return b.buildBinary(p, en)

	case *ast.QuantProp:
		return b.buildQuant(p, en)

	default:
		panic(fmt.Sprintf("eval: unexpected node type %T reached sat builder", prop))
	}
}

func (b *satBuilder) buildBinary(p *ast.BinaryProp, en env) z.Lit {
	left := b.build(p.Left, en)
	right := b.build(p.Right, en)
	switch p.Op {
	case ast.OpAnd:
		return b.c.And(left, right)
	case ast.OpOr:
		return b.c.Or(left, right)
	case ast.OpImplies:
		return b.c.Implies(left, right)
	case ast.OpIff:
		return b.c.Xor(left, right).Not()
	default:
		panic("eval: unknown binary operator")
	}
}

func (b *satBuilder) buildQuant(p *ast.QuantProp, en env) z.Lit {
	switch p.Quant {
	case ast.ForAllPoints:
		lits := make([]z.Lit, 0, b.ev.n)
		for pt := 1; pt <= b.ev.n; pt++ {
			lits = append(lits, b.build(p.Body, en.withPoint(p.Var, pt)))
		}
		return b.c.Ands(lits...)

	case ast.ExistsPoints:
		lits := make([]z.Lit, 0, b.ev.n)
		for pt := 1; pt <= b.ev.n; pt++ {
			lits = append(lits, b.build(p.Body, en.withPoint(p.Var, pt)))
		}
		return b.c.Ors(lits...)

	case ast.ForAllOpens:
		lits := make([]z.Lit, 0, len(b.ev.f.Opens))
		for _, o := range b.ev.f.Opens {
			lits = append(lits, b.build(p.Body, en.withOpen(p.Var, o)))
		}
		return b.c.Ands(lits...)

	case ast.ExistsOpens:
		lits := make([]z.Lit, 0, len(b.ev.f.Opens))
		for _, o := range b.ev.f.Opens {
			lits = append(lits, b.build(p.Body, en.withOpen(p.Var, o)))
		}
		return b.c.Ors(lits...)

	default:
		panic("eval: unknown quantifier")
	}
}

// VerifySAT re-evaluates prop by compiling it to a gini circuit and asking
// the solver whether the top-level literal is satisfiable, independently
// of Evaluator.eval's recursion. prop must be closed and macro-free, same
// contract as Check.
func VerifySAT(ev *Evaluator, prop ast.Prop) (bool, error) {
	if free := FreeVariables(prop); len(free) > 0 {
		return false, fmt.Errorf("%w: %v", ErrNotClosed, free)
	}
	b := &satBuilder{c: logic.NewC(), ev: ev}
	top := b.build(prop, newEnv())

	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(top)
	sat := g.Solve() == 1

	if debug.Eval() {
		debug.Logf("sat: top-literal satisfiable=%v\n", sat)
	}
	return sat, nil
}

// CrossCheck evaluates prop with both the recursive evaluator and the
// gini-backed circuit and returns an error if they disagree. It is the
// implementation behind a --verify-sat CLI flag: a cheap regression guard
// that two structurally independent code paths keep agreeing.
func CrossCheck(ev *Evaluator, prop ast.Prop) (Result, error) {
	res, err := ev.Check(prop)
	if err != nil {
		return Result{}, err
	}
	sat, err := VerifySAT(ev, prop)
	if err != nil {
		return Result{}, err
	}
	if res.Satisfied != sat {
		return Result{}, fmt.Errorf("%w: recursive=%v sat=%v", ErrSATMismatch, res.Satisfied, sat)
	}
	return res, nil
}

// WitnessVar names one slot of an outermost existential quantifier block.
// FindWitness takes the quantifiers directly and does not use this type,
// and no caller switches from Evaluator's left-to-right enumeration to
// FindWitness based on the size of the block.
type WitnessVar struct {
	Quant *ast.QuantProp
}

// selector is a one-hot (variable, domain value) choice, mirroring
// formula_builder.go's varDef → z.Lit bookkeeping: the var name fixes the
// position, the value fixes which "type" occupies it, and addMutex below
// plays the role of addMutexClauses.
type selector struct {
	lit   z.Lit
	point int
	open  family.Open
	kind  WitnessKind
}

// FindWitness searches an outermost run of existential quantifiers
// (EP/EO, in any mix, each binding exactly once) using gini instead of
// nested Go loops. Each variable contributes d one-hot selector literals
// and one mutex clause group, and the choice among them is left to the
// solver; the circuit itself still holds one ground copy of body per
// combination of values, so for k variables over a domain of size d it has
// d^k body copies, the same count the recursive evaluator visits in the
// worst case.
func FindWitness(ev *Evaluator, quants []*ast.QuantProp, body ast.Prop) (Result, error) {
	for _, q := range quants {
		if q.Quant != ast.ExistsPoints && q.Quant != ast.ExistsOpens {
			return Result{}, fmt.Errorf("eval: FindWitness requires an all-existential quantifier block, got %v", q.Quant)
		}
	}
	bound := make(map[string]bool, len(quants))
	for _, q := range quants {
		bound[q.Var] = true
	}
	for _, v := range FreeVariables(body) {
		if !bound[v] {
			return Result{}, fmt.Errorf("%w: %v", ErrNotClosed, v)
		}
	}

	c := logic.NewC()
	selectors := make(map[string][]selector, len(quants))

	for _, q := range quants {
		if q.Quant == ast.ExistsPoints {
			for pt := 1; pt <= ev.n; pt++ {
				selectors[q.Var] = append(selectors[q.Var], selector{lit: c.Lit(), point: pt, kind: WitnessPoint})
			}
		} else {
			for _, o := range ev.f.Opens {
				selectors[q.Var] = append(selectors[q.Var], selector{lit: c.Lit(), open: o, kind: WitnessOpen})
			}
		}
	}

	// The body is true exactly when, for each variable, the selected
	// value's component evaluates true: OR over (selector ∧ ground body)
	// for every combination, built by nesting one variable at a time, so
	// every combination of values gets its own ground copy of body.
	b := &satBuilder{c: c, ev: ev}
	bodyLit := buildWithSelectors(b, quants, 0, selectors, body, newEnv())

	g := gini.New()
	c.ToCnf(g)
	addMutex(g, selectors)
	g.Assume(bodyLit)

	if g.Solve() != 1 {
		return falseResult(), nil
	}

	res := trueResult()
	for v, opts := range selectors {
		for _, s := range opts {
			if g.Value(s.lit) {
				if s.kind == WitnessPoint {
					res = res.withWitness(v, Witness{Kind: WitnessPoint, Point: s.point})
				} else {
					res = res.withWitness(v, Witness{Kind: WitnessOpen, Open: s.open})
				}
				break
			}
		}
	}
	return res, nil
}

// buildWithSelectors folds the selector one-hot choices for quants[i:] into
// the circuit, binding env as it goes, then compiles body against the
// fully bound environment once every variable has a selector in scope.
func buildWithSelectors(b *satBuilder, quants []*ast.QuantProp, i int, selectors map[string][]selector, body ast.Prop, en env) z.Lit {
	if i == len(quants) {
		return b.build(body, en)
	}
	q := quants[i]
	branches := make([]z.Lit, 0, len(selectors[q.Var]))
	for _, s := range selectors[q.Var] {
		var next env
		if s.kind == WitnessPoint {
			next = en.withPoint(q.Var, s.point)
		} else {
			next = en.withOpen(q.Var, s.open)
		}
		rest := buildWithSelectors(b, quants, i+1, selectors, body, next)
		branches = append(branches, b.c.And(s.lit, rest))
	}
	return b.c.Ors(branches...)
}

// addMutex forbids a solution selecting more than one value for the same
// variable, the same role formula_builder.go's addMutexClauses plays for
// (position, type) pairs.
func addMutex(g *gini.Gini, selectors map[string][]selector) {
	for _, opts := range selectors {
		for i := 0; i < len(opts); i++ {
			for j := i + 1; j < len(opts); j++ {
				g.Add(opts[i].lit.Not())
				g.Add(opts[j].lit.Not())
				g.Add(0)
			}
		}
	}
}

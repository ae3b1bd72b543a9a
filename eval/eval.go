// Package eval implements the two-sorted first-order evaluator described
// in SPEC_FULL.md §4.6, grounded directly on
// original_source/src/model_checker.rs's recursive eval_formula: classical
// two-valued truth, points ranging over {1,...,n}, opens ranging over the
// family, and witnesses accumulated for every existential quantifier on
// the satisfying path.
package eval

import (
	"fmt"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/family"
)

// Evaluator evaluates macro-free formulas against one fixed family. The
// antipode table and per-point community are computed lazily and cached
// for the Evaluator's lifetime, since SPEC_FULL.md §4.6 calls out K(p) as
// expensive and requiring memoization per (F, p).
type Evaluator struct {
	n              int
	f              family.Family
	anti           map[family.Open]family.Open
	communityCache map[int]family.Open
}

// New returns an Evaluator for formulas over the n-point family f.
func New(n int, f family.Family) *Evaluator {
	return &Evaluator{n: n, f: f, communityCache: make(map[int]family.Open)}
}

// env is the point/open variable environment threaded through evaluation.
// Extending it copies the relevant map, mirroring model_checker.rs's
// Assignment::clone_with_point/open so that sibling branches of a
// quantifier never observe each other's bindings.
type env struct {
	points map[string]int
	opens  map[string]family.Open
}

func newEnv() env {
	return env{points: map[string]int{}, opens: map[string]family.Open{}}
}

func (e env) withPoint(v string, p int) env {
	next := make(map[string]int, len(e.points)+1)
	for k, val := range e.points {
		next[k] = val
	}
	next[v] = p
	return env{points: next, opens: e.opens}
}

func (e env) withOpen(v string, o family.Open) env {
	next := make(map[string]family.Open, len(e.opens)+1)
	for k, val := range e.opens {
		next[k] = val
	}
	next[v] = o
	return env{points: e.points, opens: next}
}

// Check evaluates prop against the Evaluator's family, starting from the
// empty environment. prop must be closed (no free point/open variables)
// and macro-free; FreeVariables can verify the former ahead of time.
func (ev *Evaluator) Check(prop ast.Prop) (Result, error) {
	if free := FreeVariables(prop); len(free) > 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrNotClosed, free)
	}
	res := ev.eval(prop, newEnv())
	if debug.Eval() {
		debug.Logf("eval: satisfied=%v witnesses=%v\n", res.Satisfied, res.Witnesses)
	}
	return res, nil
}

func (ev *Evaluator) eval(prop ast.Prop, en env) Result {
	switch p := prop.(type) {
	case *ast.AtomicProp:
		if ev.evalAtom(p, en) {
			return trueResult()
		}
		return falseResult()

	case *ast.UnaryProp:
		inner := ev.eval(p.Operand, en)
		return Result{Satisfied: !inner.Satisfied, Witnesses: inner.Witnesses}

	case *ast.BinaryProp:
		return ev.evalBinary(p, en)

	case *ast.QuantProp:
		return ev.evalQuant(p, en)

	default:
		panic(fmt.Sprintf("eval: unexpected node type %T reached evaluation (macro not expanded?)", prop))
	}
}

func (ev *Evaluator) evalBinary(p *ast.BinaryProp, en env) Result {
	switch p.Op {
	case ast.OpAnd:
		left := ev.eval(p.Left, en)
		if !left.Satisfied {
			return left
		}
		right := ev.eval(p.Right, en)
		if !right.Satisfied {
			return right
		}
		return mergeWitnesses(left, right)

	case ast.OpOr:
		left := ev.eval(p.Left, en)
		if left.Satisfied {
			return left
		}
		right := ev.eval(p.Right, en)
		if right.Satisfied {
			return right
		}
		return falseResult()

	case ast.OpImplies:
		left := ev.eval(p.Left, en)
		if !left.Satisfied {
			return trueResult()
		}
		return ev.eval(p.Right, en)

	case ast.OpIff:
		// model_checker.rs's Formula has no Iff variant even though its
		// macro expander constructs one; evaluated directly here as
		// classical material equivalence rather than via expansion.
		left := ev.eval(p.Left, en)
		right := ev.eval(p.Right, en)
		if left.Satisfied == right.Satisfied {
			return mergeWitnesses(left, right)
		}
		return falseResult()

	default:
		panic("eval: unknown binary operator")
	}
}

func mergeWitnesses(a, b Result) Result {
	out := Result{Satisfied: true, Witnesses: make(map[string]Witness, len(a.Witnesses)+len(b.Witnesses))}
	for k, v := range a.Witnesses {
		out.Witnesses[k] = v
	}
	for k, v := range b.Witnesses {
		out.Witnesses[k] = v
	}
	return out
}

func (ev *Evaluator) evalQuant(p *ast.QuantProp, en env) Result {
	switch p.Quant {
	case ast.ForAllPoints:
		for pt := 1; pt <= ev.n; pt++ {
			res := ev.eval(p.Body, en.withPoint(p.Var, pt))
			if !res.Satisfied {
				return falseResult()
			}
		}
		return trueResult()

	case ast.ExistsPoints:
		for pt := 1; pt <= ev.n; pt++ {
			res := ev.eval(p.Body, en.withPoint(p.Var, pt))
			if res.Satisfied {
				return res.withWitness(p.Var, Witness{Kind: WitnessPoint, Point: pt})
			}
		}
		return falseResult()

	case ast.ForAllOpens:
		for _, o := range ev.f.Opens {
			res := ev.eval(p.Body, en.withOpen(p.Var, o))
			if !res.Satisfied {
				return falseResult()
			}
		}
		return trueResult()

	case ast.ExistsOpens:
		for _, o := range ev.f.Opens {
			res := ev.eval(p.Body, en.withOpen(p.Var, o))
			if res.Satisfied {
				return res.withWitness(p.Var, Witness{Kind: WitnessOpen, Open: o})
			}
		}
		return falseResult()

	default:
		panic("eval: unknown quantifier")
	}
}

func (ev *Evaluator) evalAtom(a *ast.AtomicProp, en env) bool {
	switch a.Kind {
	case ast.AtomPointInOpen:
		pt, ok := en.points[a.Point1.Var]
		if !ok {
			return false
		}
		o, ok := ev.evalOpen(a.Open1, en)
		if !ok {
			return false
		}
		return o.Has(pt)

	case ast.AtomOpenInter:
		o1, ok1 := ev.evalOpen(a.Open1, en)
		o2, ok2 := ev.evalOpen(a.Open2, en)
		return ok1 && ok2 && o1.IntersectsWith(o2)

	case ast.AtomNonempty:
		o, ok := ev.evalOpen(a.Open1, en)
		return ok && o.Nonempty()

	case ast.AtomPointEqual:
		p1, ok1 := en.points[a.Point1.Var]
		p2, ok2 := en.points[a.Point2.Var]
		return ok1 && ok2 && p1 == p2

	case ast.AtomPointNotEqual:
		p1, ok1 := en.points[a.Point1.Var]
		p2, ok2 := en.points[a.Point2.Var]
		return ok1 && ok2 && p1 != p2

	case ast.AtomOpenEqual:
		o1, ok1 := ev.evalOpen(a.Open1, en)
		o2, ok2 := ev.evalOpen(a.Open2, en)
		return ok1 && ok2 && o1 == o2

	case ast.AtomOpenNotEqual:
		o1, ok1 := ev.evalOpen(a.Open1, en)
		o2, ok2 := ev.evalOpen(a.Open2, en)
		return ok1 && ok2 && o1 != o2

	default:
		panic("eval: unknown atom kind")
	}
}

func (ev *Evaluator) evalOpen(o ast.OpenExpr, en env) (family.Open, bool) {
	switch v := o.(type) {
	case *ast.OpenVarExpr:
		val, ok := en.opens[v.Var]
		return val, ok

	case *ast.CommunityExpr:
		pt, ok := en.points[v.Point.Var]
		if !ok {
			return 0, false
		}
		return ev.community(pt), true

	case *ast.InteriorComplementExpr:
		inner, ok := ev.evalOpen(v.Inner, en)
		if !ok {
			return 0, false
		}
		return interiorComplement(ev.f, inner), true

	default:
		panic(fmt.Sprintf("eval: unexpected open expression type %T", o))
	}
}

func (ev *Evaluator) community(p int) family.Open {
	if k, ok := ev.communityCache[p]; ok {
		return k
	}
	if ev.anti == nil {
		ev.anti = buildAntipodes(ev.f)
	}
	k := community(ev.f, ev.anti, ev.n, p)
	ev.communityCache[p] = k
	return k
}

// FreeVariables returns every point/open variable referenced in prop that
// is not bound by an enclosing quantifier.
func FreeVariables(prop ast.Prop) []string {
	bound := map[string]bool{}
	var free []string
	seen := map[string]bool{}
	var walk func(p ast.Prop)
	var walkOpen func(o ast.OpenExpr)

	noteVar := func(name string) {
		if !bound[name] && !seen[name] {
			seen[name] = true
			free = append(free, name)
		}
	}

	walkOpen = func(o ast.OpenExpr) {
		switch v := o.(type) {
		case *ast.OpenVarExpr:
			noteVar(v.Var)
		case *ast.CommunityExpr:
			noteVar(v.Point.Var)
		case *ast.InteriorComplementExpr:
			walkOpen(v.Inner)
		}
	}

	walk = func(p ast.Prop) {
		switch v := p.(type) {
		case *ast.QuantProp:
			wasBound := bound[v.Var]
			bound[v.Var] = true
			walk(v.Body)
			bound[v.Var] = wasBound
		case *ast.BinaryProp:
			walk(v.Left)
			walk(v.Right)
		case *ast.UnaryProp:
			walk(v.Operand)
		case *ast.AtomicProp:
			if v.Point1 != nil {
				noteVar(v.Point1.Var)
			}
			if v.Point2 != nil {
				noteVar(v.Point2.Var)
			}
			if v.Open1 != nil {
				walkOpen(v.Open1)
			}
			if v.Open2 != nil {
				walkOpen(v.Open2)
			}
		}
	}
	walk(prop)
	return free
}

// Package macro expands the twenty-one macro propositions of the
// proposition language into macro-free core formulas, following
// original_source/src/macro_expander.rs's rewrite table and its recursive
// expansion structure (a handful of macros call back into the expansion
// of a smaller macro rather than re-deriving it). Every freshly
// introduced bound variable is unique for the lifetime of one Expand
// call, which prevents variable capture when macros nest.
package macro

import (
	"fmt"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/token"
)

// Expander rewrites a Prop tree, replacing every MacroProp node with its
// macro-free expansion.
type Expander struct {
	fresh int
}

// New returns an Expander with a fresh variable counter starting at 0.
func New() *Expander {
	return &Expander{}
}

// Expand is a pure function of prop except for the monotonically
// increasing fresh-variable counter it threads through nested macro
// expansions within a single call.
func Expand(prop ast.Prop) (ast.Prop, error) {
	return New().expand(prop)
}

func (e *Expander) freshVar(base string) string {
	name := fmt.Sprintf("%s_%d", base, e.fresh)
	e.fresh++
	return name
}

func (e *Expander) expand(prop ast.Prop) (ast.Prop, error) {
	switch p := prop.(type) {
	case *ast.QuantProp:
		body, err := e.expand(p.Body)
		if err != nil {
			return nil, err
		}
		return &ast.QuantProp{Quant: p.Quant, Var: p.Var, Body: body, At: p.At}, nil

	case *ast.BinaryProp:
		left, err := e.expand(p.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.expand(p.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryProp{Op: p.Op, Left: left, Right: right, At: p.At}, nil

	case *ast.UnaryProp:
		operand, err := e.expand(p.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryProp{Operand: operand, At: p.At}, nil

	case *ast.AtomicProp:
		open1, err := e.expandOpen(p.Open1)
		if err != nil {
			return nil, err
		}
		open2, err := e.expandOpen(p.Open2)
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: p.Kind, Point1: p.Point1, Point2: p.Point2, Open1: open1, Open2: open2, At: p.At}, nil

	case *ast.MacroProp:
		return e.expandMacro(p)

	default:
		return nil, fmt.Errorf("%w: unrecognized prop node %T", ErrUnknownMacro, prop)
	}
}

// expandOpen recursively expands any macro nested inside an open-sorted
// term. The only open-sorted term that can carry a nested macro indirectly
// is unreachable in the current grammar (macros are formula-level), so
// this simply rebuilds K/IC chains unchanged; it exists so adding a future
// macro-valued open expression does not require touching every caller.
func (e *Expander) expandOpen(o ast.OpenExpr) (ast.OpenExpr, error) {
	switch v := o.(type) {
	case nil:
		return nil, nil
	case *ast.OpenVarExpr:
		return v, nil
	case *ast.CommunityExpr:
		return v, nil
	case *ast.InteriorComplementExpr:
		inner, err := e.expandOpen(v.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.InteriorComplementExpr{Inner: inner, At: v.At}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized open expression %T", ErrUnknownMacro, o)
	}
}

func and(at token.Pos, l, r ast.Prop) ast.Prop {
	return &ast.BinaryProp{Op: ast.OpAnd, Left: l, Right: r, At: at}
}

func implies(at token.Pos, l, r ast.Prop) ast.Prop {
	return &ast.BinaryProp{Op: ast.OpImplies, Left: l, Right: r, At: at}
}

func not(at token.Pos, p ast.Prop) ast.Prop {
	return &ast.UnaryProp{Operand: p, At: at}
}

func openVar(at token.Pos, name string) ast.OpenExpr {
	return &ast.OpenVarExpr{Var: name, At: at}
}

func pointVar(at token.Pos, name string) *ast.PointExpr {
	return &ast.PointExpr{Var: name, At: at}
}

func inter(at token.Pos, a, b ast.OpenExpr) ast.Prop {
	return &ast.AtomicProp{Kind: ast.AtomOpenInter, Open1: a, Open2: b, At: at}
}
func pointIn(at token.Pos, p *ast.PointExpr, o ast.OpenExpr) ast.Prop {
	return &ast.AtomicProp{Kind: ast.AtomPointInOpen, Point1: p, Open1: o, At: at}
}
func nonempty(at token.Pos, o ast.OpenExpr) ast.Prop {
	return &ast.AtomicProp{Kind: ast.AtomNonempty, Open1: o, At: at}
}

func (e *Expander) expandMacro(m *ast.MacroProp) (ast.Prop, error) {
	at := m.At
	switch m.Kind {
	case ast.MacroTripleOpenInter:
		o, p, q := m.Opens[0], m.Opens[1], m.Opens[2]
		return and(at, inter(at, o, p), inter(at, p, q)), nil

	case ast.MacroPointInter:
		return e.pointInter(at, m.Points[0], m.Points[1])

	case ast.MacroTriplePointInter:
		pq, err := e.pointInter(at, m.Points[0], m.Points[1])
		if err != nil {
			return nil, err
		}
		qr, err := e.pointInter(at, m.Points[1], m.Points[2])
		if err != nil {
			return nil, err
		}
		return and(at, pq, qr), nil

	case ast.MacroTransitive:
		return e.transitive(at, m.Opens[0]), nil

	case ast.MacroTopen:
		t := m.Opens[0]
		return and(at, nonempty(at, t), e.transitive(at, t)), nil

	case ast.MacroRegular:
		k := &ast.CommunityExpr{Point: m.Points[0], At: at}
		topen, err := e.expandMacro(&ast.MacroProp{Kind: ast.MacroTopen, Opens: []ast.OpenExpr{k}, At: at})
		if err != nil {
			return nil, err
		}
		return topen, nil

	case ast.MacroIrregular:
		regular, err := e.expandMacro(&ast.MacroProp{Kind: ast.MacroRegular, Points: m.Points, At: at})
		if err != nil {
			return nil, err
		}
		return not(at, regular), nil

	case ast.MacroWeaklyRegular:
		p := m.Points[0]
		k := &ast.CommunityExpr{Point: p, At: at}
		return pointIn(at, p, k), nil

	case ast.MacroQuasiregular:
		k := &ast.CommunityExpr{Point: m.Points[0], At: at}
		return nonempty(at, k), nil

	case ast.MacroIndirectlyRegular:
		p := m.Points[0]
		q := pointVar(at, e.freshVar("q"))
		pInterQ, err := e.pointInter(at, p, q)
		if err != nil {
			return nil, err
		}
		regularQ, err := e.expandMacro(&ast.MacroProp{Kind: ast.MacroRegular, Points: []*ast.PointExpr{q}, At: at})
		if err != nil {
			return nil, err
		}
		return &ast.QuantProp{Quant: ast.ExistsPoints, Var: q.Var, Body: and(at, pInterQ, regularQ), At: at}, nil

	case ast.MacroHypertransitive:
		return e.hypertransitive(at, m.Points[0]), nil

	case ast.MacroUnconflicted:
		return e.unconflicted(at, m.Points[0])

	case ast.MacroConflicted:
		unconflicted, err := e.unconflicted(at, m.Points[0])
		if err != nil {
			return nil, err
		}
		return not(at, unconflicted), nil

	case ast.MacroConflictedSpace:
		return e.spaceOverPoints(at, ast.MacroConflicted)
	case ast.MacroUnconflictedSpace:
		return e.spaceOverPoints(at, ast.MacroUnconflicted)
	case ast.MacroRegularSpace:
		return e.spaceOverPoints(at, ast.MacroRegular)
	case ast.MacroIrregularSpace:
		return e.spaceOverPoints(at, ast.MacroIrregular)
	case ast.MacroWeaklyRegularSpace:
		return e.spaceOverPoints(at, ast.MacroWeaklyRegular)
	case ast.MacroQuasiregularSpace:
		return e.spaceOverPoints(at, ast.MacroQuasiregular)
	case ast.MacroIndirectlyRegularSpace:
		return e.spaceOverPoints(at, ast.MacroIndirectlyRegular)
	case ast.MacroHypertransitiveSpace:
		return e.spaceOverPoints(at, ast.MacroHypertransitive)

	default:
		return nil, fmt.Errorf("%w: macro kind %d", ErrUnknownMacro, m.Kind)
	}
}

// pointInter expands "p inter q" = AO O. AO P. (p in O && q in P) => O inter P.
func (e *Expander) pointInter(at token.Pos, p, q *ast.PointExpr) (ast.Prop, error) {
	oVar := e.freshVar("O")
	bigPVar := e.freshVar("P")
	o := openVar(at, oVar)
	bigP := openVar(at, bigPVar)

	premise := and(at, pointIn(at, p, o), pointIn(at, q, bigP))
	body := implies(at, premise, inter(at, o, bigP))
	innerForall := &ast.QuantProp{Quant: ast.ForAllOpens, Var: bigPVar, Body: body, At: at}
	return &ast.QuantProp{Quant: ast.ForAllOpens, Var: oVar, Body: innerForall, At: at}, nil
}

// transitive expands "transitive T" = AO O. AO P. (O inter T && T inter P) => O inter P.
func (e *Expander) transitive(at token.Pos, t ast.OpenExpr) ast.Prop {
	oVar := e.freshVar("O")
	pVar := e.freshVar("P")
	o := openVar(at, oVar)
	p := openVar(at, pVar)

	premise := and(at, inter(at, o, t), inter(at, t, p))
	body := implies(at, premise, inter(at, o, p))
	innerForall := &ast.QuantProp{Quant: ast.ForAllOpens, Var: pVar, Body: body, At: at}
	return &ast.QuantProp{Quant: ast.ForAllOpens, Var: oVar, Body: innerForall, At: at}
}

// hypertransitive expands
// "hypertransitive p" = AO O. AO Q. (AO P. p in P => (O inter P && P inter Q)) => (O inter Q).
func (e *Expander) hypertransitive(at token.Pos, p *ast.PointExpr) ast.Prop {
	oVar := e.freshVar("O")
	qVar := e.freshVar("Q")
	bigPVar := e.freshVar("P")
	o := openVar(at, oVar)
	q := openVar(at, qVar)
	bigP := openVar(at, bigPVar)

	pInBigP := pointIn(at, p, bigP)
	oInterPInterQ := and(at, inter(at, o, bigP), inter(at, bigP, q))
	innerImpl := implies(at, pInBigP, oInterPInterQ)
	forallP := &ast.QuantProp{Quant: ast.ForAllOpens, Var: bigPVar, Body: innerImpl, At: at}

	outerImpl := implies(at, forallP, inter(at, o, q))
	forallQ := &ast.QuantProp{Quant: ast.ForAllOpens, Var: qVar, Body: outerImpl, At: at}
	return &ast.QuantProp{Quant: ast.ForAllOpens, Var: oVar, Body: forallQ, At: at}
}

// unconflicted expands "unconflicted p" = AP x. AP y. (x inter p && p inter y) => x inter y.
func (e *Expander) unconflicted(at token.Pos, p *ast.PointExpr) (ast.Prop, error) {
	x := pointVar(at, e.freshVar("x"))
	y := pointVar(at, e.freshVar("y"))

	xInterP, err := e.pointInter(at, x, p)
	if err != nil {
		return nil, err
	}
	pInterY, err := e.pointInter(at, p, y)
	if err != nil {
		return nil, err
	}
	xInterY, err := e.pointInter(at, x, y)
	if err != nil {
		return nil, err
	}

	premise := and(at, xInterP, pInterY)
	body := implies(at, premise, xInterY)
	innerForall := &ast.QuantProp{Quant: ast.ForAllPoints, Var: y.Var, Body: body, At: at}
	return &ast.QuantProp{Quant: ast.ForAllPoints, Var: x.Var, Body: innerForall, At: at}, nil
}

// spaceOverPoints expands "<predicate>_space" = AP p. <predicate> p, for the
// unary point macro identified by kind.
func (e *Expander) spaceOverPoints(at token.Pos, kind ast.MacroKind) (ast.Prop, error) {
	pVar := e.freshVar("p")
	p := pointVar(at, pVar)
	body, err := e.expandMacro(&ast.MacroProp{Kind: kind, Points: []*ast.PointExpr{p}, At: at})
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("macro: expanded space predicate over fresh var %s\n", pVar)
	}
	return &ast.QuantProp{Quant: ast.ForAllPoints, Var: pVar, Body: body, At: at}, nil
}

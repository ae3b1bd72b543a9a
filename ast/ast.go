// Package ast defines the closed-sum proposition tree produced by the
// parser, grounded directly on original_source/src/ast.rs: a Prop is
// either core logic or one of the twenty-one expandable macros, and both
// pre- and post-expansion trees use the same node types (a macro-free tree
// simply contains no MacroProp node).
package ast

import "github.com/latticegen/semiframe/token"

// Prop is any proposition node.
type Prop interface {
	Pos() token.Pos
}

// Quant is the quantifier kind.
type Quant int

const (
	ForAllPoints Quant = iota
	ExistsPoints
	ForAllOpens
	ExistsOpens
)

func (q Quant) String() string {
	switch q {
	case ForAllPoints:
		return "AP"
	case ExistsPoints:
		return "EP"
	case ForAllOpens:
		return "AO"
	case ExistsOpens:
		return "EO"
	default:
		return "?"
	}
}

// QuantProp is a quantified proposition: quant var. body.
type QuantProp struct {
	Quant Quant
	Var   string
	Body  Prop
	At    token.Pos
}

func (p *QuantProp) Pos() token.Pos { return p.At }

// BinOp is a binary logical connective.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpImplies
	OpIff
)

// BinaryProp is a binary connective applied to two subformulas.
type BinaryProp struct {
	Op          BinOp
	Left, Right Prop
	At          token.Pos
}

func (p *BinaryProp) Pos() token.Pos { return p.At }

// UnaryProp is logical negation.
type UnaryProp struct {
	Operand Prop
	At      token.Pos
}

func (p *UnaryProp) Pos() token.Pos { return p.At }

// PointExpr is a point-sorted term: always a point variable.
type PointExpr struct {
	Var string
	At  token.Pos
}

func (p *PointExpr) Pos() token.Pos { return p.At }

// OpenExpr is an open-sorted term: an open variable, the community K(p)
// of a point, or the interior complement IC(O) of another open term.
type OpenExpr interface {
	Prop
	isOpenExpr()
}

type OpenVarExpr struct {
	Var string
	At  token.Pos
}

func (e *OpenVarExpr) Pos() token.Pos { return e.At }
func (e *OpenVarExpr) isOpenExpr()     {}

type CommunityExpr struct {
	Point *PointExpr
	At    token.Pos
}

func (e *CommunityExpr) Pos() token.Pos { return e.At }
func (e *CommunityExpr) isOpenExpr()     {}

type InteriorComplementExpr struct {
	Inner OpenExpr
	At    token.Pos
}

func (e *InteriorComplementExpr) Pos() token.Pos { return e.At }
func (e *InteriorComplementExpr) isOpenExpr()     {}

// AtomKind identifies an atomic proposition's shape.
type AtomKind int

const (
	AtomPointInOpen AtomKind = iota
	AtomOpenInter
	AtomNonempty
	AtomPointEqual
	AtomPointNotEqual
	AtomOpenEqual
	AtomOpenNotEqual
)

// AtomicProp is one of the seven atomic proposition shapes in
// original_source/src/ast.rs's AtomicProp enum. Which of Point1/Point2/
// Open1/Open2 are populated depends on Kind.
type AtomicProp struct {
	Kind   AtomKind
	Point1 *PointExpr
	Point2 *PointExpr
	Open1  OpenExpr
	Open2  OpenExpr
	At     token.Pos
}

func (p *AtomicProp) Pos() token.Pos { return p.At }

// MacroKind identifies one of the twenty-one macros.
type MacroKind int

const (
	MacroTripleOpenInter MacroKind = iota
	MacroPointInter
	MacroTriplePointInter
	MacroTransitive
	MacroTopen
	MacroRegular
	MacroIrregular
	MacroWeaklyRegular
	MacroQuasiregular
	MacroIndirectlyRegular
	MacroHypertransitive
	MacroUnconflicted
	MacroConflicted
	MacroConflictedSpace
	MacroUnconflictedSpace
	MacroRegularSpace
	MacroIrregularSpace
	MacroWeaklyRegularSpace
	MacroQuasiregularSpace
	MacroIndirectlyRegularSpace
	MacroHypertransitiveSpace
)

// MacroProp is an unexpanded macro application. Arguments are carried in
// the slices appropriate to the macro's arity (0-3); the macro expander is
// the only consumer that interprets them, per Kind.
type MacroProp struct {
	Kind   MacroKind
	Points []*PointExpr
	Opens  []OpenExpr
	At     token.Pos
}

func (p *MacroProp) Pos() token.Pos { return p.At }

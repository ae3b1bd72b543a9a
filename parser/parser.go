// Package parser implements a recursive-descent parser for the
// proposition language, producing an ast.Prop. Grammar precedence
// (lowest to highest), per SPEC_FULL.md §4.4: quantifiers (right-assoc,
// greedy over the rest of the formula unless parenthesized) < `=>`
// (right-assoc) < `<=>` (left-assoc) < `||` (left-assoc) < `&&`
// (left-assoc) < unary `!` < primaries.
package parser

import (
	"fmt"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/token"
)

// Parser consumes a fixed token slice with one-token lookahead.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses src into a Prop (possibly containing macro
// nodes — see the macro package to expand them).
func Parse(src string) (ast.Prop, error) {
	toks, err := token.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	prop, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.EOF {
		return nil, fmt.Errorf("%w: %s at %s", ErrUnexpectedToken, p.cur().Kind, p.cur().Pos)
	}
	if debug.Parse() {
		debug.Logf("parser: parsed %q\n", src)
	}
	return prop, nil
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, fmt.Errorf("%w: expected %s, got %s at %s", ErrUnexpectedToken, k, p.cur().Kind, p.cur().Pos)
	}
	return p.advance(), nil
}

// parseImplies is the entry point to the full precedence cascade; a
// quantifier's body is always parsed by calling this, so the quantifier
// greedily consumes everything up to the next unmatched ')' or EOF.
func (p *Parser) parseImplies() (ast.Prop, error) {
	left, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == token.Implies {
		at := p.advance().Pos
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryProp{Op: ast.OpImplies, Left: left, Right: right, At: at}, nil
	}
	return left, nil
}

func (p *Parser) parseIff() (ast.Prop, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Iff {
		at := p.advance().Pos
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryProp{Op: ast.OpIff, Left: left, Right: right, At: at}
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Prop, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Or {
		at := p.advance().Pos
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryProp{Op: ast.OpOr, Left: left, Right: right, At: at}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Prop, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.And {
		at := p.advance().Pos
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryProp{Op: ast.OpAnd, Left: left, Right: right, At: at}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Prop, error) {
	if p.cur().Kind == token.Not {
		at := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryProp{Operand: operand, At: at}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Prop, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case token.AP, token.EP, token.AO, token.EO:
		return p.parseQuantifier()

	case token.Nonempty:
		p.advance()
		o, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomNonempty, Open1: o, At: tok.Pos}, nil

	case token.PointVar:
		return p.parsePointLedPrimary()

	case token.OpenVar, token.K, token.IC:
		return p.parseOpenLedPrimary()

	case token.Transitive:
		p.advance()
		o, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.MacroProp{Kind: ast.MacroTransitive, Opens: []ast.OpenExpr{o}, At: tok.Pos}, nil

	case token.Topen:
		p.advance()
		o, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.MacroProp{Kind: ast.MacroTopen, Opens: []ast.OpenExpr{o}, At: tok.Pos}, nil

	case token.Regular, token.Irregular, token.WeaklyRegular, token.Quasiregular,
		token.IndirectlyRegular, token.Hypertransitive, token.Unconflicted, token.Conflicted:
		p.advance()
		pt, err := p.parsePointExpr()
		if err != nil {
			return nil, err
		}
		return &ast.MacroProp{Kind: unaryPointMacroKind(tok.Kind), Points: []*ast.PointExpr{pt}, At: tok.Pos}, nil

	case token.ConflictedSpace, token.UnconflictedSpace, token.RegularSpace, token.IrregularSpace,
		token.WeaklyRegularSpace, token.QuasiregularSpace, token.IndirectlyRegularSpace, token.HypertransitiveSpace:
		p.advance()
		return &ast.MacroProp{Kind: spaceMacroKind(tok.Kind), At: tok.Pos}, nil

	default:
		return nil, fmt.Errorf("%w: %s at %s", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}

func (p *Parser) parseQuantifier() (ast.Prop, error) {
	tok := p.advance()
	var quant ast.Quant
	var wantVar token.Kind
	switch tok.Kind {
	case token.AP:
		quant, wantVar = ast.ForAllPoints, token.PointVar
	case token.EP:
		quant, wantVar = ast.ExistsPoints, token.PointVar
	case token.AO:
		quant, wantVar = ast.ForAllOpens, token.OpenVar
	case token.EO:
		quant, wantVar = ast.ExistsOpens, token.OpenVar
	}
	varTok := p.cur()
	if varTok.Kind != wantVar {
		return nil, fmt.Errorf("%w: %s quantifier expects a %s, got %s at %s", ErrSortMismatch, tok.Kind, wantVar, varTok.Kind, varTok.Pos)
	}
	p.advance()
	if _, err := p.expect(token.Dot); err != nil {
		return nil, err
	}
	body, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return &ast.QuantProp{Quant: quant, Var: varTok.Text, Body: body, At: tok.Pos}, nil
}

// parsePointLedPrimary resolves the ambiguity between p = q / p != q /
// p in X / p inter q / p inter q inter r, all of which begin with a
// PointVar.
func (p *Parser) parsePointLedPrimary() (ast.Prop, error) {
	p1, err := p.parsePointExpr()
	if err != nil {
		return nil, err
	}
	tok := p.cur()
	switch tok.Kind {
	case token.Equal:
		p.advance()
		p2, err := p.parsePointExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomPointEqual, Point1: p1, Point2: p2, At: tok.Pos}, nil
	case token.NotEqual:
		p.advance()
		p2, err := p.parsePointExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomPointNotEqual, Point1: p1, Point2: p2, At: tok.Pos}, nil
	case token.In:
		p.advance()
		o, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomPointInOpen, Point1: p1, Open1: o, At: tok.Pos}, nil
	case token.Inter:
		p.advance()
		p2, err := p.parsePointExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind == token.Inter {
			p.advance()
			p3, err := p.parsePointExpr()
			if err != nil {
				return nil, err
			}
			return &ast.MacroProp{Kind: ast.MacroTriplePointInter, Points: []*ast.PointExpr{p1, p2, p3}, At: tok.Pos}, nil
		}
		return &ast.MacroProp{Kind: ast.MacroPointInter, Points: []*ast.PointExpr{p1, p2}, At: tok.Pos}, nil
	default:
		return nil, fmt.Errorf("%w: expected =, !=, in, or inter after point variable, got %s at %s", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}

// parseOpenLedPrimary resolves X = Y / X != Y / X inter Y / X inter Y
// inter Z, all of which begin with an open-sorted term.
func (p *Parser) parseOpenLedPrimary() (ast.Prop, error) {
	o1, err := p.parseOpenExpr()
	if err != nil {
		return nil, err
	}
	tok := p.cur()
	switch tok.Kind {
	case token.Equal:
		p.advance()
		o2, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomOpenEqual, Open1: o1, Open2: o2, At: tok.Pos}, nil
	case token.NotEqual:
		p.advance()
		o2, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AtomicProp{Kind: ast.AtomOpenNotEqual, Open1: o1, Open2: o2, At: tok.Pos}, nil
	case token.Inter:
		p.advance()
		o2, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind == token.Inter {
			p.advance()
			o3, err := p.parseOpenExpr()
			if err != nil {
				return nil, err
			}
			return &ast.MacroProp{Kind: ast.MacroTripleOpenInter, Opens: []ast.OpenExpr{o1, o2, o3}, At: tok.Pos}, nil
		}
		return &ast.AtomicProp{Kind: ast.AtomOpenInter, Open1: o1, Open2: o2, At: tok.Pos}, nil
	default:
		return nil, fmt.Errorf("%w: expected =, !=, or inter after open term, got %s at %s", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}

func (p *Parser) parsePointExpr() (*ast.PointExpr, error) {
	tok, err := p.expect(token.PointVar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpectedVar, err)
	}
	return &ast.PointExpr{Var: tok.Text, At: tok.Pos}, nil
}

// parseOpenExpr parses an open-sorted term: an open variable, K(point), or
// IC(openExpr), the latter two written without parentheses around their
// argument ("K p", "IC X", "IC IC X"), with optional grouping parens.
func (p *Parser) parseOpenExpr() (ast.OpenExpr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.OpenVar:
		p.advance()
		return &ast.OpenVarExpr{Var: tok.Text, At: tok.Pos}, nil
	case token.K:
		p.advance()
		pt, err := p.parsePointExpr()
		if err != nil {
			return nil, err
		}
		return &ast.CommunityExpr{Point: pt, At: tok.Pos}, nil
	case token.IC:
		p.advance()
		inner, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.InteriorComplementExpr{Inner: inner, At: tok.Pos}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseOpenExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("%w: expected an open expression, got %s at %s", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}

func unaryPointMacroKind(k token.Kind) ast.MacroKind {
	switch k {
	case token.Regular:
		return ast.MacroRegular
	case token.Irregular:
		return ast.MacroIrregular
	case token.WeaklyRegular:
		return ast.MacroWeaklyRegular
	case token.Quasiregular:
		return ast.MacroQuasiregular
	case token.IndirectlyRegular:
		return ast.MacroIndirectlyRegular
	case token.Hypertransitive:
		return ast.MacroHypertransitive
	case token.Unconflicted:
		return ast.MacroUnconflicted
	case token.Conflicted:
		return ast.MacroConflicted
	default:
		panic("unreachable: not a unary point macro token")
	}
}

func spaceMacroKind(k token.Kind) ast.MacroKind {
	switch k {
	case token.ConflictedSpace:
		return ast.MacroConflictedSpace
	case token.UnconflictedSpace:
		return ast.MacroUnconflictedSpace
	case token.RegularSpace:
		return ast.MacroRegularSpace
	case token.IrregularSpace:
		return ast.MacroIrregularSpace
	case token.WeaklyRegularSpace:
		return ast.MacroWeaklyRegularSpace
	case token.QuasiregularSpace:
		return ast.MacroQuasiregularSpace
	case token.IndirectlyRegularSpace:
		return ast.MacroIndirectlyRegularSpace
	case token.HypertransitiveSpace:
		return ast.MacroHypertransitiveSpace
	default:
		panic("unreachable: not a space macro token")
	}
}

package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer turns formula source text into a stream of Tokens. It is a
// straightforward hand-written DFA-free scanner: no lexer-generator
// dependency is wired here because the token set is small and fixed, and
// a maximal-munch identifier scan followed by a keyword-table lookup
// reproduces the Logos lexer's priority rules exactly (see tokens.rs)
// without needing code generation.
type Lexer struct {
	doc *PosDoc
	src string
	pos int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{doc: NewPosDoc(src), src: src, pos: 0}
}

// Next scans and returns the next token, or an EOF token at end of input.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Pos: l.doc.Pos(l.pos)}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '(':
		l.pos++
		return l.tok(LParen, "(", start), nil
	case c == ')':
		l.pos++
		return l.tok(RParen, ")", start), nil
	case c == '.':
		l.pos++
		return l.tok(Dot, ".", start), nil
	case c == '&' && l.peekIs(1, '&'):
		l.pos += 2
		return l.tok(And, "&&", start), nil
	case c == '|' && l.peekIs(1, '|'):
		l.pos += 2
		return l.tok(Or, "||", start), nil
	case c == '=' && l.peekIs(1, '>'):
		l.pos += 2
		return l.tok(Implies, "=>", start), nil
	case c == '<' && l.peekIs(1, '=') && l.peekIs(2, '>'):
		l.pos += 3
		return l.tok(Iff, "<=>", start), nil
	case c == '!' && l.peekIs(1, '='):
		l.pos += 2
		return l.tok(NotEqual, "!=", start), nil
	case c == '!':
		l.pos++
		return l.tok(Not, "!", start), nil
	case c == '=':
		l.pos++
		return l.tok(Equal, "=", start), nil
	}

	if isIdentStart(c) {
		return l.scanIdent(start)
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return Token{}, fmt.Errorf("%w: %q at %s", ErrUnknownChar, r, l.doc.Pos(start))
}

func (l *Lexer) tok(k Kind, text string, start int) Token {
	return Token{Kind: k, Text: text, Pos: l.doc.Pos(start)}
}

func (l *Lexer) peekIs(offset int, want byte) bool {
	i := l.pos + offset
	return i < len(l.src) && l.src[i] == want
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentCont(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// scanIdent performs maximal-munch identification of an identifier, then
// checks it against the keyword table; a miss falls back to the
// case-discriminated PointVar/OpenVar rule per tokens.rs.
func (l *Lexer) scanIdent(start int) (Token, error) {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]

	if kind, ok := keywords[text]; ok {
		return l.tok(kind, text, start), nil
	}

	first := rune(text[0])
	switch {
	case unicode.IsLower(first):
		return l.tok(PointVar, text, start), nil
	case unicode.IsUpper(first):
		return l.tok(OpenVar, text, start), nil
	default:
		return Token{}, fmt.Errorf("%w: %q at %s", ErrBadIdentifier, text, l.doc.Pos(start))
	}
}

// Lex scans src to completion and returns every token including a
// trailing EOF, or the first lex error encountered.
func Lex(src string) ([]Token, error) {
	l := NewLexer(src)
	var toks []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks, nil
		}
	}
}

// Package token holds the lexical tokens and source-position tracking
// shared by the parser and by error reporting. Pos/PosDoc follow the
// teacher's position-tracking idiom: a doc owns the raw bytes plus a
// sorted list of newline offsets, and a Pos is a lightweight (offset, doc)
// pair that computes line/col lazily.
package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc is the source text a formula was parsed from, together with the
// newline offsets needed to translate a byte offset into a line/column.
type PosDoc struct {
	src   []byte
	nls   []int
	built bool
}

// NewPosDoc wraps src for position tracking.
func NewPosDoc(src string) *PosDoc {
	d := &PosDoc{src: []byte(src)}
	d.build()
	return d
}

func (d *PosDoc) build() {
	if d.built {
		return
	}
	for i, b := range d.src {
		if b == '\n' {
			d.nls = append(d.nls, i)
		}
	}
	d.built = true
}

// LineCol converts a byte offset into a 0-based line and column.
func (d *PosDoc) LineCol(off int) (int, int) {
	n := len(d.nls)
	idx := sort.Search(n, func(i int) bool { return d.nls[i] >= off })
	if idx == 0 {
		return 0, off
	}
	return idx, off - d.nls[idx-1] - 1
}

// Pos returns a Pos for byte offset i into d.
func (d *PosDoc) Pos(i int) Pos {
	return Pos{I: i, D: d}
}

// Pos is a position within a PosDoc: a byte offset plus a backreference
// to the document, so line/column and source-sample rendering can be
// computed on demand rather than carried everywhere.
type Pos struct {
	I int
	D *PosDoc
}

// LineCol returns the 0-based line and column of p.
func (p Pos) LineCol() (int, int) {
	if p.D == nil {
		return 0, p.I
	}
	return p.D.LineCol(p.I)
}

// Line returns the 0-based line of p.
func (p Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

// Col returns the 0-based column of p.
func (p Pos) Col() int {
	_, c := p.LineCol()
	return c
}

// String renders p with a short source sample and line/column, in the
// style of the teacher's Pos.String.
func (p Pos) String() string {
	if p.D == nil {
		return fmt.Sprintf("offset %d", p.I)
	}
	lo := max(0, p.I-5)
	hi := min(p.I+5, len(p.D.src))
	sample := strconv.Quote(string(p.D.src[lo:hi]))
	sample = sample[1 : len(sample)-1]
	l, c := p.LineCol()
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, l, c)
}

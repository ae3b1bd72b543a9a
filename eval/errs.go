package eval

import "errors"

// ErrNotClosed signals that Check was handed a formula with a free
// variable. eval's contract (SPEC_FULL.md §4.6) is to evaluate only
// closed, macro-free formulas; a free variable is a caller error caught
// before any recursive evaluation begins, not a runtime false result.
var ErrNotClosed = errors.New("formula is not closed")

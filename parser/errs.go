package parser

import "errors"

// Sentinel parse errors, wrapped with position/offending-token context at
// the call site, per SPEC_FULL.md §5's error taxonomy.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrSortMismatch    = errors.New("sort mismatch")
	ErrMacroArity      = errors.New("macro arity error")
	ErrExpectedVar     = errors.New("expected variable")
)

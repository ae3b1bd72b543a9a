package family

import "errors"

var (
	ErrSyntax           = errors.New("family syntax error")
	ErrElementRange     = errors.New("element out of range")
	ErrDuplicateElement = errors.New("duplicate element")
	ErrDuplicateOpen    = errors.New("duplicate open in family")
	ErrNotUnionClosed   = errors.New("family is not union-closed")
	ErrMissingEmpty     = errors.New("semitopology must contain the empty set")
	ErrMissingFull      = errors.New("semitopology must contain the full set")
	ErrNotT0            = errors.New("family is not T0")
)

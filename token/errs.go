package token

import "errors"

// Sentinel lex errors, in the teacher's token/errs.go style: one
// errors.New per distinct failure kind, wrapped with position by the
// caller.
var (
	ErrUnknownChar   = errors.New("unknown character")
	ErrUnterminated  = errors.New("unterminated token")
	ErrBadIdentifier = errors.New("malformed identifier")
)

package coordinator

import "errors"

// ErrInvalidConfig signals a Config field with no valid interpretation
// (unknown mode, unknown cache policy, empty size range).
var ErrInvalidConfig = errors.New("invalid coordinator configuration")

// ErrOutputUnwritable signals that the configured output sink could not be
// opened, a resource error per spec.md §7(c), surfaced at setup rather than
// mid-enumeration.
var ErrOutputUnwritable = errors.New("output sink is not writable")

package diagnostics

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a human-readable diff between expected and actual text
// (family or formula syntax, per spec.md §6), grounded on the teacher's
// own go-diff usage in libdiff/string.go's DiffString — but rendered as
// plain text for CLI/test failure output rather than folded back into an
// ir.Node tree, since there is no document model here to round-trip into.
func Diff(expected, actual string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Equal reports whether expected and actual are identical, the fast path a
// caller should check before paying for Diff's formatting.
func Equal(expected, actual string) bool {
	return expected == actual
}

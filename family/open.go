// Package family implements the bitmask representation of subsets of a
// ground set {1,...,n} ("opens") and of union-closed families of opens.
package family

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// Open is a subset of {1,...,n}, represented as a bitmask: bit i set means
// element (i+1) is a member. MaxN is the largest ground size this
// representation supports, fixed by the 64-bit word.
type Open uint64

const MaxN = 64

// Full returns the open containing every element of {1,...,n}.
func Full(n int) Open {
	if n <= 0 {
		return 0
	}
	if n >= MaxN {
		return ^Open(0)
	}
	return Open(1)<<uint(n) - 1
}

// Has reports whether element p (1-based) is a member of o.
func (o Open) Has(p int) bool {
	if p < 1 {
		return false
	}
	return (o>>uint(p-1))&1 == 1
}

// Union returns o1 ∪ o2.
func (o1 Open) Union(o2 Open) Open { return o1 | o2 }

// Intersect returns o1 ∩ o2.
func (o1 Open) Intersect(o2 Open) Open { return o1 & o2 }

// IntersectsWith reports whether o1 ∩ o2 ≠ ∅.
func (o1 Open) IntersectsWith(o2 Open) bool { return o1&o2 != 0 }

// Nonempty reports whether o ≠ ∅.
func (o Open) Nonempty() bool { return o != 0 }

// Card returns the cardinality |o|.
func (o Open) Card() int { return bits.OnesCount64(uint64(o)) }

// Elements returns the 1-based members of o in ascending order, for n bits.
func (o Open) Elements(n int) []int {
	els := make([]int, 0, o.Card())
	for i := 0; i < n; i++ {
		if o.Has(i + 1) {
			els = append(els, i+1)
		}
	}
	return els
}

// Permute returns the open obtained by relabeling element i+1 to
// perm[i]+1, for every set bit i < n.
func (o Open) Permute(n int, perm []int) Open {
	var out Open
	for i := 0; i < n; i++ {
		if o.Has(i + 1) {
			out |= Open(1) << uint(perm[i])
		}
	}
	return out
}

// String renders o using the external family text syntax: "{e1,e2,...}"
// with ascending elements, "{}" for the empty set. The bitmask alone does
// not bound the ground set, so String formats with n = MaxN; FormatOpen
// takes n explicitly.
func (o Open) String() string {
	return FormatOpen(o, MaxN)
}

// FormatOpen renders o with elements in 1..n.
func FormatOpen(o Open, n int) string {
	els := o.Elements(n)
	if len(els) == 0 {
		return "{}"
	}
	parts := make([]string, len(els))
	for i, e := range els {
		parts[i] = strconv.Itoa(e)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ParseOpen parses a single set like "{1, 2, 3}" or "{}", validating every
// element lies in 1..n and rejecting duplicates.
func ParseOpen(s string, n int) (Open, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return 0, fmt.Errorf("%w: set must be enclosed in braces: %q", ErrSyntax, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return 0, nil
	}
	var o Open
	for _, tok := range strings.Split(inner, ",") {
		tok = strings.TrimSpace(tok)
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid element %q", ErrSyntax, tok)
		}
		if v < 1 || v > n {
			return 0, fmt.Errorf("%w: element %d out of range for n=%d", ErrElementRange, v, n)
		}
		bit := Open(1) << uint(v-1)
		if o&bit != 0 {
			return 0, fmt.Errorf("%w: duplicate element %d", ErrDuplicateElement, v)
		}
		o |= bit
	}
	return o, nil
}

// SortOpens sorts opens ascending as integers — the internal canonical
// identity ordering (distinct from the display ordering used by
// FormatFamily).
func SortOpens(os []Open) {
	sort.Slice(os, func(i, j int) bool { return os[i] < os[j] })
}

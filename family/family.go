package family

import (
	"fmt"
	"sort"
	"strings"
)

// Family is an ordered sequence of distinct opens, sorted ascending as
// integers. This sorted tuple IS the identity of the family: equality,
// hashing and dictionary ordering are all defined on it.
type Family struct {
	N     int
	Opens []Open
}

// New builds a Family from opens, sorted ascending. It checks neither
// distinctness nor union-closure — see Validate for that.
func New(n int, opens []Open) Family {
	out := make([]Open, len(opens))
	copy(out, opens)
	SortOpens(out)
	return Family{N: n, Opens: out}
}

// Clone returns a deep copy.
func (f Family) Clone() Family {
	opens := make([]Open, len(f.Opens))
	copy(opens, f.Opens)
	return Family{N: f.N, Opens: opens}
}

// Contains reports whether o ∈ f.
func (f Family) Contains(o Open) bool {
	i := sort.Search(len(f.Opens), func(i int) bool { return f.Opens[i] >= o })
	return i < len(f.Opens) && f.Opens[i] == o
}

// With returns a new Family with o inserted (f is left untouched). It is
// the caller's responsibility to ensure o is not already present.
func (f Family) With(o Open) Family {
	opens := make([]Open, len(f.Opens)+1)
	copy(opens, f.Opens)
	opens[len(f.Opens)] = o
	SortOpens(opens)
	return Family{N: f.N, Opens: opens}
}

// WithoutAt returns a new Family with the element at sorted index i removed.
func (f Family) WithoutAt(i int) Family {
	opens := make([]Open, 0, len(f.Opens)-1)
	opens = append(opens, f.Opens[:i]...)
	opens = append(opens, f.Opens[i+1:]...)
	return Family{N: f.N, Opens: opens}
}

// Equal reports whether two families have identical sorted tuples (and
// ground size).
func (f Family) Equal(g Family) bool {
	if f.N != g.N || len(f.Opens) != len(g.Opens) {
		return false
	}
	for i := range f.Opens {
		if f.Opens[i] != g.Opens[i] {
			return false
		}
	}
	return true
}

// Key returns a comparable value suitable for use as a map key — the
// ground size followed by the sorted tuple, joined into a single string.
// Used by Cache and by in-batch deduplication.
func (f Family) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:", f.N)
	for i, o := range f.Opens {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%x", uint64(o))
	}
	return sb.String()
}

// IsUnionClosed reports whether f is closed under pairwise union.
func (f Family) IsUnionClosed() bool {
	for i, x := range f.Opens {
		for _, y := range f.Opens[i:] {
			if !f.Contains(x.Union(y)) {
				return false
			}
		}
	}
	return true
}

// IsSemitopology reports whether f is union-closed and contains both ∅ and
// the full set.
func (f Family) IsSemitopology() bool {
	return f.Contains(0) && f.Contains(Full(f.N)) && f.IsUnionClosed()
}

// IsT0 reports whether every pair of distinct points is separated by some
// open in f: ∀ i≠j ∃ s ∈ f with exactly one of i,j ∈ s.
func (f Family) IsT0() bool {
	for p := 1; p <= f.N; p++ {
		for q := p + 1; q <= f.N; q++ {
			if !f.separates(p, q) {
				return false
			}
		}
	}
	return true
}

func (f Family) separates(p, q int) bool {
	for _, s := range f.Opens {
		if s.Has(p) != s.Has(q) {
			return true
		}
	}
	return false
}

// IsSemiframe reports whether f is a T0 semitopology.
func (f Family) IsSemiframe() bool {
	return f.IsSemitopology() && f.IsT0()
}

// Validate checks the structural invariants spec.md §3 demands and returns
// the first violated one, or nil.
func (f Family) Validate() error {
	full := Full(f.N)
	seen := make(map[Open]bool, len(f.Opens))
	for _, o := range f.Opens {
		if o&^full != 0 {
			return fmt.Errorf("%w: %s exceeds n=%d", ErrElementRange, FormatOpen(o, f.N), f.N)
		}
		if seen[o] {
			return fmt.Errorf("%w: %s", ErrDuplicateOpen, FormatOpen(o, f.N))
		}
		seen[o] = true
	}
	if !f.IsUnionClosed() {
		return ErrNotUnionClosed
	}
	return nil
}

// String renders f using the output convention of spec.md §6: opens sorted
// by (cardinality, then lexicographic) on display, though the internal
// identity ordering used by Key/Equal remains bitmask-ascending.
func (f Family) String() string {
	return FormatFamily(f)
}

// FormatFamily renders a family for display, per spec.md §6: "{S1, S2,
// ...}" with each Si printed via FormatOpen, opens ordered by (cardinality,
// then lexicographic element order) rather than the internal bitmask order.
func FormatFamily(f Family) string {
	if len(f.Opens) == 0 {
		return "{}"
	}
	type entry struct {
		els []int
		o   Open
	}
	entries := make([]entry, len(f.Opens))
	for i, o := range f.Opens {
		entries[i] = entry{els: o.Elements(f.N), o: o}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].els, entries[j].els
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = FormatOpen(e.o, f.N)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Parse parses the family text syntax of spec.md §6: "{S1, S2, ...}".
// Whitespace is insignificant; "{}" denotes the empty family.
func Parse(s string, n int) (Family, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return Family{}, fmt.Errorf("%w: family must be enclosed in outer braces: %q", ErrSyntax, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return Family{N: n}, nil
	}
	sets, err := splitSets(inner)
	if err != nil {
		return Family{}, err
	}
	opens := make([]Open, 0, len(sets))
	for _, setStr := range sets {
		o, err := ParseOpen(setStr, n)
		if err != nil {
			return Family{}, err
		}
		opens = append(opens, o)
	}
	f := New(n, opens)
	if err := f.Validate(); err != nil && err != ErrNotUnionClosed {
		return Family{}, err
	}
	return f, nil
}

// splitSets splits a comma-joined list of brace-delimited sets, respecting
// nesting depth (the only nesting that occurs is the set's own braces).
func splitSets(s string) ([]string, error) {
	var out []string
	depth := 0
	start := -1
	for i, ch := range s {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced braces", ErrSyntax)
			}
			if depth == 0 {
				out = append(out, s[start:i+1])
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced braces", ErrSyntax)
	}
	return out, nil
}

// Package canon computes canonical forms of set families under the
// symmetric group S_n acting on points, per spec.md §4.1.
package canon

import (
	"sort"

	"github.com/latticegen/semiframe/cache"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/family"
)

// Result is the outcome of canonicalizing a family: the canonical family
// itself, plus the certificate permutation that produced it. Perm[i] is the
// slot that original point (i+1) was relabeled to (0-based).
type Result struct {
	Family family.Family
	Perm   []int
}

// Canonicalizer computes canonical forms, optionally memoizing through a
// bounded Cache. It owns no other mutable state and is safe to share across
// a single-threaded search; per spec.md §4.2 it need not be safe for
// concurrent writers.
type Canonicalizer struct {
	cache *cache.Cache
}

// New returns a Canonicalizer backed by the given cache (nil disables
// memoization).
func New(c *cache.Cache) *Canonicalizer {
	return &Canonicalizer{cache: c}
}

// Canonicalize returns the lexicographically minimal sorted-tuple family
// reachable from f by any permutation of {1,...,n}. It is deterministic and
// referentially transparent: equal orbits always canonicalize identically.
func (c *Canonicalizer) Canonicalize(f family.Family) family.Family {
	return c.CanonicalizeWithCert(f).Family
}

// CanonicalizeWithCert is Canonicalize but also returns the certificate
// permutation. The cache stores only the family, so on a cache hit the
// returned Perm is nil.
func (c *Canonicalizer) CanonicalizeWithCert(f family.Family) Result {
	if len(f.Opens) == 0 {
		return Result{Family: family.Family{N: f.N}, Perm: identity(f.N)}
	}
	if c.cache != nil {
		if hit, ok := c.cache.Get(f); ok {
			return Result{Family: hit} // certificate not preserved across cache hits
		}
	}
	res := canonicalLabel(f)
	if c.cache != nil {
		c.cache.Put(f, res.Family)
	}
	if debug.Canon() {
		debug.Logf("canon: %s -> %s\n", f.String(), res.Family.String())
	}
	return res
}

// CanonicalDelete implements canon_delete: it removes the smallest-valued
// (first, in ascending-sorted order) open from the already-canonical family
// F*, then re-canonicalizes the remainder. This "drop-first" convention is
// the one the reference implementation (original_source/src/canon.rs)
// actually uses and is what the Generator's canonical-parent test in
// generate.Generator depends on — see SPEC_FULL.md §4.3.
func (c *Canonicalizer) CanonicalDelete(canonicalF family.Family) family.Family {
	if len(canonicalF.Opens) == 0 {
		return family.Family{N: canonicalF.N}
	}
	reduced := canonicalF.WithoutAt(0)
	return c.Canonicalize(reduced)
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// canonicalLabel finds the true lexicographically least sorted-tuple family
// reachable from f under any permutation of {1,...,n}, per spec.md §4.1's
// "brute force over all n! permutations is permitted" clause for the small
// ground sets this enumerator handles. It still prunes the n! search, but
// only by a transformation that is provably lossless rather than by fixing
// a cell-to-slot-range assignment ahead of time (an earlier version of this
// function ranked cells by a signature string and only searched orderings
// within each cell's fixed slot range — that rank is not in general
// monotonic with the lexicographic objective, so it missed the true
// minimum). Two points with identical incidence across every open of f are
// interchangeable: swapping the slots they end up in changes no open's
// bitmask, because every open that contains one contains the other. So the
// search only needs to try one representative assignment per distinct
// arrangement of point-classes to slots, not every arrangement of the
// individual points within a class.
func canonicalLabel(f family.Family) Result {
	n := f.N
	classOf := classifyPoints(n, f.Opens)
	pointsByClass := map[int][]int{}
	for p := 0; p < n; p++ {
		pointsByClass[classOf[p]] = append(pointsByClass[classOf[p]], p)
	}

	order := make([]int, n)
	copy(order, classOf)
	sort.Ints(order)

	best := Result{}
	haveBest := false
	for {
		perm := decodeOrder(order, pointsByClass)
		cand := applyPerm(f, perm)
		if !haveBest || lessFamily(cand, best.Family) {
			best = Result{Family: cand, Perm: perm}
			haveBest = true
		}
		if !nextPermutation(order) {
			break
		}
	}
	return best
}

// classifyPoints groups points of {0,...,n-1} (0-based) by their exact
// incidence pattern across opens: class ids are ranked by the pattern's
// string encoding, so the mapping is itself deterministic.
func classifyPoints(n int, opens []family.Open) []int {
	sig := make([]string, n)
	for p := 0; p < n; p++ {
		b := make([]byte, len(opens))
		for i, o := range opens {
			if o.Has(p + 1) {
				b[i] = '1'
			} else {
				b[i] = '0'
			}
		}
		sig[p] = string(b)
	}
	uniq := map[string]bool{}
	for _, s := range sig {
		uniq[s] = true
	}
	ranked := make([]string, 0, len(uniq))
	for s := range uniq {
		ranked = append(ranked, s)
	}
	sort.Strings(ranked)
	rank := make(map[string]int, len(ranked))
	for i, s := range ranked {
		rank[s] = i
	}
	classes := make([]int, n)
	for p, s := range sig {
		classes[p] = rank[s]
	}
	return classes
}

// decodeOrder turns a slot-indexed sequence of class ids into a point->slot
// permutation, assigning each class's slots to its points in ascending
// point order (any assignment within a class yields the same family, by
// classifyPoints's interchangeability argument, so the choice is arbitrary
// but must be deterministic).
func decodeOrder(order []int, pointsByClass map[int][]int) []int {
	n := len(order)
	next := map[int]int{}
	perm := make([]int, n)
	for slot, class := range order {
		idx := next[class]
		pt := pointsByClass[class][idx]
		perm[pt] = slot
		next[class] = idx + 1
	}
	return perm
}

// nextPermutation advances order to the next distinct permutation in
// lexicographic order (Narayana's algorithm), correctly skipping
// permutations that are indistinguishable under duplicate values. order
// must start sorted ascending to visit every distinct arrangement exactly
// once; it reports false once order is already the last one.
func nextPermutation(order []int) bool {
	n := len(order)
	i := n - 2
	for i >= 0 && order[i] >= order[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := n - 1
	for order[j] <= order[i] {
		j--
	}
	order[i], order[j] = order[j], order[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		order[l], order[r] = order[r], order[l]
	}
	return true
}

// applyPerm relabels every open of f under perm (perm[oldPoint] = newSlot,
// 0-based) and returns the resulting sorted-tuple family.
func applyPerm(f family.Family, perm []int) family.Family {
	opens := make([]family.Open, len(f.Opens))
	for i, o := range f.Opens {
		opens[i] = o.Permute(f.N, perm)
	}
	return family.New(f.N, opens)
}

func lessFamily(a, b family.Family) bool {
	for i := 0; i < len(a.Opens) && i < len(b.Opens); i++ {
		if a.Opens[i] != b.Opens[i] {
			return a.Opens[i] < b.Opens[i]
		}
	}
	return len(a.Opens) < len(b.Opens)
}

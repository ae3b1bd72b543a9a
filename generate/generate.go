// Package generate implements the orbit-avoiding DFS enumerator of union-
// closed set families described in SPEC_FULL.md §4.3: starting from a
// canonical family, repeatedly extend by one candidate open at a time,
// admitting only the extensions that pass the canonical-parent test, so
// that every canonical family in the search space is produced exactly
// once.
package generate

import (
	"github.com/latticegen/semiframe/canon"
	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/family"
)

// Mode selects the family predicate enforced at emission.
type Mode int

const (
	// Semitopology requires only union-closure plus ∅ and the full set.
	Semitopology Mode = iota
	// Semiframe additionally requires the T0 separation axiom, checked as
	// a post-filter per SPEC_FULL.md §4.3.
	Semiframe
)

// DefaultBatchSize is the batch size used when Config.BatchSize is zero.
// Run treats each depth's whole frontier as one batch, deduplicated as a
// unit; the batch size only sets how often a batch-boundary line is
// logged under debug.Generate, and does not split a depth into smaller
// batches.
const DefaultBatchSize = 100_000

// Sink receives each canonical family as it is emitted, along with its
// depth (the number of non-full, non-empty opens added on top of the
// starting family) in the search tree. It returns false to request
// cancellation; once it does, the Generator emits nothing further.
type Sink func(f family.Family, depth int) (keepGoing bool)

// Config parameterizes a single run of Run.
type Config struct {
	N         int
	Mode      Mode
	Start     family.Family // canonicalized by the caller or by Run itself
	Limit     int           // 0 means unbounded
	BatchSize int
}

// Generator owns the frontier and the canonicalization facilities shared
// across an entire search, per spec.md §5 ("the frontier is owned by the
// Generator").
type Generator struct {
	canon *canon.Canonicalizer
}

// New returns a Generator backed by the given Canonicalizer (which in turn
// may be backed by a shared Cache).
func New(c *canon.Canonicalizer) *Generator {
	return &Generator{canon: c}
}

// Run enumerates canonical families per cfg, invoking sink for each one
// that satisfies cfg.Mode's predicate, until the frontier is exhausted or
// cfg.Limit families have been emitted (0 = no limit). It returns the
// number of families emitted.
//
// Per SPEC_FULL.md §3, families never carry ∅ as a live element during the
// search; sink is invoked with ∅ reinserted, unconditionally, right before
// the call.
func (g *Generator) Run(cfg Config, sink Sink) int {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	start := g.canon.Canonicalize(cfg.Start)

	emitted := 0
	stop := false

	emit := func(f family.Family, depth int) {
		withEmpty := f.With(0)
		if cfg.Mode == Semiframe && !withEmpty.IsT0() {
			return
		}
		emitted++
		if debug.Generate() {
			debug.Logf("generate: emit depth=%d %s\n", depth, withEmpty.String())
		}
		if !sink(withEmpty, depth) {
			stop = true
		}
		if cfg.Limit > 0 && emitted >= cfg.Limit {
			stop = true
		}
	}

	// frontier holds the canonical families awaiting expansion at the
	// current depth; nextFrontier accumulates the next depth's batch, with
	// in-batch deduplication against seen, per spec.md §4.3's batching rule.
	frontier := []family.Family{start}
	depth := 0
	emit(start, depth)

	for len(frontier) > 0 && !stop {
		var nextFrontier []family.Family
		seen := make(map[string]bool)

		for _, parent := range frontier {
			if stop {
				break
			}
			for _, child := range g.extend(parent) {
				key := child.Key()
				if seen[key] {
					continue
				}
				seen[key] = true
				nextFrontier = append(nextFrontier, child)
				emit(child, depth+1)
				if stop {
					break
				}
				if debug.Generate() && len(seen)%batchSize == 0 {
					debug.Logf("generate: batch boundary at depth=%d size=%d\n", depth+1, len(seen))
				}
			}
		}

		frontier = nextFrontier
		depth++
	}

	return emitted
}

// extend computes every admissible one-open extension of the canonical
// family parent: for each candidate open s not already in parent such that
// parent ∪ {s} stays union-closed, canonicalize parent ∪ {s} and keep it
// only if it passes the canonical-parent test (SPEC_FULL.md §4.3,
// "drop-first" convention via canon.CanonicalDelete).
func (g *Generator) extend(parent family.Family) []family.Family {
	n := parent.N
	full := family.Full(n)
	var children []family.Family

	for s := family.Open(1); s <= full; s++ {
		if parent.Contains(s) {
			continue
		}
		if !unionClosurePreserving(parent, s) {
			continue
		}
		candidate := parent.With(s)
		canonical := g.canon.Canonicalize(candidate)
		reduced := g.canon.CanonicalDelete(canonical)
		if !reduced.Equal(parent) {
			continue
		}
		children = append(children, canonical)
	}
	return children
}

// unionClosurePreserving reports whether adding s to f keeps the family
// union-closed without needing any further completion: every x ∈ f must
// satisfy x ∪ s ∈ f ∪ {s}.
func unionClosurePreserving(f family.Family, s family.Open) bool {
	for _, x := range f.Opens {
		u := x.Union(s)
		if u != s && !f.Contains(u) {
			return false
		}
	}
	return true
}

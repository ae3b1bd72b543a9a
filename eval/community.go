package eval

import "github.com/latticegen/semiframe/family"

// buildAntipodes constructs anti[O] = ⋃{Q ∈ F : Q ∩ O = ∅} for every O ∈ F,
// grounded directly on model_checker.rs's build_antipodes. It is computed
// once per Evaluator and reused by every community lookup against the same
// family.
func buildAntipodes(f family.Family) map[family.Open]family.Open {
	anti := make(map[family.Open]family.Open, len(f.Opens))
	for _, o := range f.Opens {
		anti[o] = 0
	}
	for _, o := range f.Opens {
		for _, q := range f.Opens {
			if !o.IntersectsWith(q) {
				anti[o] |= q
			}
		}
	}
	return anti
}

// community computes K(p) using the antipode table, following
// model_checker.rs's community_with_cache exactly: gather everything
// separable from p, take the inseparable class, then union every open
// contained in that class.
func community(f family.Family, anti map[family.Open]family.Open, n, p int) family.Open {
	if p < 1 || p > n || len(f.Opens) == 0 {
		return 0
	}
	universe := family.Full(n)
	pBit := family.Open(1) << uint(p-1)

	var separable family.Open
	for _, o := range f.Opens {
		if o&pBit != 0 {
			separable |= anti[o]
		}
	}

	class := universe &^ separable

	var comm family.Open
	for _, o := range f.Opens {
		if o&^class == 0 {
			comm |= o
		}
	}
	return comm
}

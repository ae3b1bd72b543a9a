package eval

import "github.com/latticegen/semiframe/family"

// interiorComplement returns IC(O): the union of every open in F disjoint
// from O, per model_checker.rs's interior_complement. By union-closure
// this is itself always a member of F.
func interiorComplement(f family.Family, o family.Open) family.Open {
	var comp family.Open
	for _, q := range f.Opens {
		if !o.IntersectsWith(q) {
			comp |= q
		}
	}
	return comp
}

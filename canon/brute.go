package canon

import "github.com/latticegen/semiframe/family"

// BruteForce canonicalizes f by exhaustively trying every permutation of
// {1,...,n}, with no class-based pruning. spec.md §4.1 explicitly permits
// this for n ≲ 8; it exists here as an independent correctness oracle for
// canonicalLabel, exercised by canon_test.go, not as a production code path.
func BruteForce(f family.Family) family.Family {
	n := f.N
	if n == 0 || len(f.Opens) == 0 {
		return family.Family{N: n}
	}
	perm := identity(n)
	best := applyPerm(f, perm)
	permute(perm, func(p []int) {
		cand := applyPerm(f, p)
		if lessFamily(cand, best) {
			best = cand
		}
	})
	return best
}

// permute invokes fn for every permutation of p (Heap's algorithm) except
// the starting ordering passed in, which the caller handles itself.
func permute(p []int, fn func([]int)) {
	n := len(p)
	c := make([]int, n)
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[c[i]], p[i] = p[i], p[c[i]]
			}
			fn(append([]int(nil), p...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}

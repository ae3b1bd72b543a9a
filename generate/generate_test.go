package generate

import (
	"testing"

	"github.com/latticegen/semiframe/canon"
	"github.com/latticegen/semiframe/family"
)

// semiframeCounts and semitopologyCounts reproduce the reference counts
// from spec.md §8 for small n, where brute-force enumeration is cheap
// enough to serve as a test oracle.
var semiframeCounts = map[int]int{1: 1, 2: 2, 3: 10}
var semitopologyCounts = map[int]int{1: 1, 2: 3, 3: 14}

func startingFamily(n int, mode Mode) family.Family {
	return family.New(n, []family.Open{family.Full(n)})
}

func countEmitted(t *testing.T, n int, mode Mode) int {
	t.Helper()
	c := canon.New(nil)
	g := New(c)
	n0 := 0
	g.Run(Config{N: n, Mode: mode, Start: startingFamily(n, mode)}, func(f family.Family, depth int) bool {
		if !f.IsUnionClosed() {
			t.Errorf("emitted family is not union-closed: %s", f)
		}
		if !f.Contains(0) || !f.Contains(family.Full(n)) {
			t.Errorf("emitted family missing ∅ or full set: %s", f)
		}
		if mode == Semiframe && !f.IsT0() {
			t.Errorf("emitted semiframe family is not T0: %s", f)
		}
		n0++
		return true
	})
	return n0
}

func TestSemiframeReferenceCounts(t *testing.T) {
	for n, want := range semiframeCounts {
		got := countEmitted(t, n, Semiframe)
		if got != want {
			t.Errorf("n=%d semiframes: got %d, want %d", n, got, want)
		}
	}
}

func TestSemitopologyReferenceCounts(t *testing.T) {
	for n, want := range semitopologyCounts {
		got := countEmitted(t, n, Semitopology)
		if got != want {
			t.Errorf("n=%d semitopologies: got %d, want %d", n, got, want)
		}
	}
}

func TestNoFamilyEmittedTwice(t *testing.T) {
	n := 3
	c := canon.New(nil)
	g := New(c)
	seen := map[string]bool{}
	g.Run(Config{N: n, Mode: Semitopology, Start: startingFamily(n, Semitopology)}, func(f family.Family, depth int) bool {
		key := f.Key()
		if seen[key] {
			t.Errorf("family %s emitted more than once", f)
		}
		seen[key] = true
		return true
	})
}

func TestEmissionLimitStopsEarly(t *testing.T) {
	n := 3
	c := canon.New(nil)
	g := New(c)
	got := 0
	g.Run(Config{N: n, Mode: Semitopology, Start: startingFamily(n, Semitopology), Limit: 3}, func(f family.Family, depth int) bool {
		got++
		return true
	})
	if got != 3 {
		t.Errorf("expected exactly 3 emitted families with Limit=3, got %d", got)
	}
}

func TestSinkCancellationStopsImmediately(t *testing.T) {
	n := 3
	c := canon.New(nil)
	g := New(c)
	got := 0
	g.Run(Config{N: n, Mode: Semitopology, Start: startingFamily(n, Semitopology)}, func(f family.Family, depth int) bool {
		got++
		return false
	})
	if got != 1 {
		t.Errorf("expected sink cancellation after first emission, got %d", got)
	}
}

func TestSemiframeN2Scenario(t *testing.T) {
	n := 2
	c := canon.New(nil)
	g := New(c)
	var got []string
	g.Run(Config{N: n, Mode: Semiframe, Start: startingFamily(n, Semiframe)}, func(f family.Family, depth int) bool {
		got = append(got, f.String())
		return true
	})
	want := map[string]bool{
		"{{}, {1}, {1,2}}":      true,
		"{{}, {1}, {2}, {1,2}}": true,
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 families, got %v", got)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected family %s", s)
		}
	}
}

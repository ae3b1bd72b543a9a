package family

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAndFormatRoundTrip(t *testing.T) {
	cases := []struct {
		n    int
		text string
	}{
		{3, "{}"},
		{3, "{{1}, {1,2}, {1,3}, {1,2,3}}"},
		{2, "{{}, {1}, {2}, {1,2}}"},
	}
	for _, c := range cases {
		f, err := Parse(c.text, c.n)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.text, err)
		}
		got := FormatFamily(f)
		f2, err := Parse(got, c.n)
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", got, err)
		}
		if !f.Equal(f2) {
			t.Errorf("round trip mismatch: %v vs %v", f, f2)
		}
	}
}

func TestParseRejectsOutOfRange(t *testing.T) {
	if _, err := Parse("{{1,5}}", 3); err == nil {
		t.Fatal("expected range error")
	}
}

func TestParseRejectsDuplicateElement(t *testing.T) {
	if _, err := Parse("{{1,1,2}}", 3); err == nil {
		t.Fatal("expected duplicate element error")
	}
}

func TestIsUnionClosed(t *testing.T) {
	f, err := Parse("{{1}, {1,2}, {1,3}, {1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsUnionClosed() {
		t.Error("expected union-closed")
	}

	notClosed, err := Parse("{{1}, {2}}", 2)
	if err != nil {
		t.Fatal(err)
	}
	if notClosed.IsUnionClosed() {
		t.Error("expected not union-closed")
	}
}

func TestIsSemiframeSierpinski(t *testing.T) {
	f, err := Parse("{{}, {1,2}, {1,3}, {1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsSemitopology() {
		t.Fatal("expected semitopology")
	}
	if !f.IsT0() {
		t.Error("expected T0: {1,2} separates 2 from 3, {1,3} separates 1 from 2, {1,2} separates 1 from 3")
	}
}

func TestFormatFamilyOutputOrder(t *testing.T) {
	f := New(3, []Open{0b111, 0b001, 0b011})
	got := FormatFamily(f)
	want := "{{1}, {1,2}, {1,2,3}}"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestKeyStableAcrossClone(t *testing.T) {
	f, _ := Parse("{{1}, {1,2}}", 2)
	g := f.Clone()
	if diff := cmp.Diff(f.Key(), g.Key()); diff != "" {
		t.Errorf("key mismatch: %s", diff)
	}
}

package coordinator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/latticegen/semiframe/family"
)

func TestRunSemiframeReferenceCounts(t *testing.T) {
	want := map[int]int{1: 1, 2: 2, 3: 10}
	for n, wantCount := range want {
		cfg := Config{Mode: "semiframe", MinN: n, MaxN: n, Output: os.DevNull}
		co := New()
		got, err := co.Run(cfg, func(Emission) bool { return true })
		if err != nil {
			t.Fatalf("n=%d: Run: %v", n, err)
		}
		if got != wantCount {
			t.Errorf("n=%d: got %d semiframes, want %d", n, got, wantCount)
		}
	}
}

func TestRunSemitopologyReferenceCounts(t *testing.T) {
	want := map[int]int{1: 1, 2: 3, 3: 14}
	for n, wantCount := range want {
		cfg := Config{Mode: "semitopology", MinN: n, MaxN: n, Output: os.DevNull}
		co := New()
		got, err := co.Run(cfg, func(Emission) bool { return true })
		if err != nil {
			t.Fatalf("n=%d: Run: %v", n, err)
		}
		if got != wantCount {
			t.Errorf("n=%d: got %d semitopologies, want %d", n, got, wantCount)
		}
	}
}

func TestRunFiltersByFormula(t *testing.T) {
	cfg := Config{
		Mode:    "semitopology",
		MinN:    3,
		MaxN:    3,
		Formula: "EO X. EP x. x in X",
		Output:  os.DevNull,
	}
	co := New()
	var emissions []Emission
	total, err := co.Run(cfg, func(e Emission) bool {
		emissions = append(emissions, e)
		return true
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if total != len(emissions) {
		t.Fatalf("total=%d but sink saw %d emissions", total, len(emissions))
	}
	for _, e := range emissions {
		if e.Result == nil || !e.Result.Satisfied {
			t.Fatalf("unsatisfying family reached sink: %v", e)
		}
	}
	if total == 0 {
		t.Fatal("expected at least one satisfying family at n=3")
	}
}

func TestRunRejectsEmptyRange(t *testing.T) {
	co := New()
	if _, err := co.Run(Config{Mode: "semiframe", MinN: 3, MaxN: 1}, func(Emission) bool { return true }); err == nil {
		t.Fatal("expected ErrInvalidConfig for an inverted size range")
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	co := New()
	cfg := Config{Mode: "bogus", MinN: 1, MaxN: 1}
	if _, err := co.Run(cfg, func(Emission) bool { return true }); err == nil {
		t.Fatal("expected ErrInvalidConfig for an unknown mode")
	}
}

func TestRunHonorsCustomStartingFamily(t *testing.T) {
	cfg := Config{Mode: "semitopology", MinN: 3, MaxN: 3, Start: "{{1,2,3}}", Output: os.DevNull}
	co := New()
	got, err := co.Run(cfg, func(Emission) bool { return true })
	if err != nil {
		t.Fatal(err)
	}
	want := 14
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestRunWritesOutputFileWithPattern(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "out-{n}.txt")
	cfg := Config{Mode: "semiframe", MinN: 2, MaxN: 2, Output: pattern}
	co := New()
	if _, err := co.Run(cfg, func(Emission) bool { return true }); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out-2.txt"))
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty output file")
	}
}

func TestLoadConfigWithPatchOverlay(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.json")
	patch := filepath.Join(dir, "patch.json")
	if err := os.WriteFile(base, []byte(`{"mode":"semiframe","min_n":1,"max_n":3,"limit":0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(patch, []byte(`[{"op":"replace","path":"/limit","value":5}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigWithPatch(base, patch)
	if err != nil {
		t.Fatalf("LoadConfigWithPatch: %v", err)
	}
	want := &Config{Mode: "semiframe", MinN: 1, MaxN: 3, Limit: 5}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDecodesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.yaml")
	doc := "mode: semitopology\nmin_n: 1\nmax_n: 2\nlimit: 7\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &Config{Mode: "semitopology", MinN: 1, MaxN: 2, Limit: 7}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigWithPatchRejectsYAMLBase(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	patch := filepath.Join(dir, "patch.json")
	if err := os.WriteFile(base, []byte("mode: semiframe\nmin_n: 1\nmax_n: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(patch, []byte(`[{"op":"replace","path":"/limit","value":5}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigWithPatch(base, patch); err == nil {
		t.Fatal("expected ErrInvalidConfig when patching a YAML base config")
	}
}

func TestStartingFamilyDefaultsToFullSet(t *testing.T) {
	f, err := startingFamily("", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := family.New(3, []family.Open{family.Full(3)})
	if !f.Equal(want) {
		t.Errorf("got %s, want %s", f.String(), want.String())
	}
}

func TestStartingFamilyStripsEmptySet(t *testing.T) {
	f, err := startingFamily("{{},{1,2,3}}", 3)
	if err != nil {
		t.Fatal(err)
	}
	if f.Contains(0) {
		t.Errorf("expected ∅ to be stripped from a supplied starting family, got %s", f.String())
	}
}

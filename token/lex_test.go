package token

import "testing"

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	ks := make([]Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexOperators(t *testing.T) {
	got := kinds(t, "&& || => <=> ! != =")
	want := []Kind{And, Or, Implies, Iff, Not, NotEqual, Equal, EOF}
	assertKinds(t, got, want)
}

func TestLexQuantifiersAndKeywordsBeatIdentifiers(t *testing.T) {
	// "regular" must lex as the Regular keyword, not a PointVar, even
	// though it starts lowercase like a point variable.
	got := kinds(t, "EP x. regular x")
	want := []Kind{EP, PointVar, Dot, Regular, PointVar, EOF}
	assertKinds(t, got, want)
}

func TestLexOpenAndPointVarsByCase(t *testing.T) {
	got := kinds(t, "x in X")
	want := []Kind{PointVar, In, OpenVar, EOF}
	assertKinds(t, got, want)
}

func TestLexMacroKeywords(t *testing.T) {
	got := kinds(t, "hypertransitive_space")
	want := []Kind{HypertransitiveSpace, EOF}
	assertKinds(t, got, want)
}

func TestLexUnknownCharacter(t *testing.T) {
	if _, err := Lex("x @ y"); err == nil {
		t.Fatal("expected lex error for '@'")
	}
}

func assertKinds(t *testing.T, got, want []Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

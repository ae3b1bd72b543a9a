package token

// Kind identifies a lexical token class. The set mirrors
// original_source/src/tokens.rs's Logos token enum: logical operators,
// quantifiers, the primitive predicates/open-formers, the eighteen macro
// keywords, case-discriminated variables, and punctuation.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// Logical operators.
	And    // &&
	Or     // ||
	Implies // =>
	Iff     // <=>
	Not     // !
	Equal   // =
	NotEqual // !=

	// Quantifiers.
	AP
	EP
	AO
	EO

	// Primitives.
	In
	Inter
	Nonempty
	K
	IC

	// Macro keywords.
	Transitive
	Topen
	Regular
	Irregular
	WeaklyRegular
	Quasiregular
	IndirectlyRegular
	Hypertransitive
	Unconflicted
	Conflicted
	ConflictedSpace
	UnconflictedSpace
	RegularSpace
	IrregularSpace
	WeaklyRegularSpace
	QuasiregularSpace
	IndirectlyRegularSpace
	HypertransitiveSpace

	// Variables.
	PointVar
	OpenVar

	// Punctuation.
	Dot
	LParen
	RParen
)

var names = map[Kind]string{
	Illegal: "illegal", EOF: "eof",
	And: "&&", Or: "||", Implies: "=>", Iff: "<=>", Not: "!", Equal: "=", NotEqual: "!=",
	AP: "AP", EP: "EP", AO: "AO", EO: "EO",
	In: "in", Inter: "inter", Nonempty: "nonempty", K: "K", IC: "IC",
	Transitive: "transitive", Topen: "topen", Regular: "regular", Irregular: "irregular",
	WeaklyRegular: "weakly_regular", Quasiregular: "quasiregular",
	IndirectlyRegular: "indirectly_regular", Hypertransitive: "hypertransitive",
	Unconflicted: "unconflicted", Conflicted: "conflicted",
	ConflictedSpace: "conflicted_space", UnconflictedSpace: "unconflicted_space",
	RegularSpace: "regular_space", IrregularSpace: "irregular_space",
	WeaklyRegularSpace: "weakly_regular_space", QuasiregularSpace: "quasiregular_space",
	IndirectlyRegularSpace: "indirectly_regular_space", HypertransitiveSpace: "hypertransitive_space",
	PointVar: "point-var", OpenVar: "open-var",
	Dot: ".", LParen: "(", RParen: ")",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// keywords maps every exact-token keyword to its Kind. Per tokens.rs, an
// exact keyword match always wins over the PointVar/OpenVar regexes —
// "regular" is the Regular keyword, never a lowercase point variable — so
// the lexer checks this table before falling back to the case-based
// variable rule.
var keywords = map[string]Kind{
	"AP": AP, "EP": EP, "AO": AO, "EO": EO,
	"in": In, "inter": Inter, "nonempty": Nonempty, "K": K, "IC": IC,
	"transitive": Transitive, "topen": Topen, "regular": Regular, "irregular": Irregular,
	"weakly_regular": WeaklyRegular, "quasiregular": Quasiregular,
	"indirectly_regular": IndirectlyRegular, "hypertransitive": Hypertransitive,
	"unconflicted": Unconflicted, "conflicted": Conflicted,
	"conflicted_space": ConflictedSpace, "unconflicted_space": UnconflictedSpace,
	"regular_space": RegularSpace, "irregular_space": IrregularSpace,
	"weakly_regular_space": WeaklyRegularSpace, "quasiregular_space": QuasiregularSpace,
	"indirectly_regular_space": IndirectlyRegularSpace, "hypertransitive_space": HypertransitiveSpace,
}

// Token is a single lexed token: its kind, literal text (for variables),
// and source position.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

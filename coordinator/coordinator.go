package coordinator

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/latticegen/semiframe/ast"
	"github.com/latticegen/semiframe/cache"
	"github.com/latticegen/semiframe/canon"
	"github.com/latticegen/semiframe/eval"
	"github.com/latticegen/semiframe/family"
	"github.com/latticegen/semiframe/generate"
	"github.com/latticegen/semiframe/macro"
	"github.com/latticegen/semiframe/parser"
)

// Emission is what the Coordinator hands to a Sink for every family that
// clears the configured formula filter (or every emitted family, when no
// formula is configured, in which case Result is nil).
type Emission struct {
	N      int
	Family family.Family
	Result *eval.Result
}

// Sink receives one Emission at a time, in emission order, and returns
// false to request cancellation, mirroring generate.Sink's protocol.
type Sink func(Emission) (keepGoing bool)

// Coordinator owns no state across runs; per spec.md §9 the Cache, the
// Canonicalizer and the Generator's frontier are all constructed fresh and
// passed explicitly for each n in Run's range.
type Coordinator struct{}

// New returns a Coordinator.
func New() *Coordinator {
	return &Coordinator{}
}

// Run executes cfg: for each n in [cfg.MinN, cfg.MaxN], canonicalize the
// starting family, run the Generator, and (if cfg.Formula is set)
// expand-and-evaluate the formula against each emitted family, forwarding
// only satisfying families to sink. It returns the total number of
// families forwarded to sink across every n.
func (co *Coordinator) Run(cfg Config, sink Sink) (int, error) {
	if cfg.MinN <= 0 || cfg.MaxN < cfg.MinN {
		return 0, fmt.Errorf("%w: empty or invalid size range [%d,%d]", ErrInvalidConfig, cfg.MinN, cfg.MaxN)
	}
	mode, err := cfg.mode()
	if err != nil {
		return 0, err
	}
	policy, err := cfg.cachePolicy()
	if err != nil {
		return 0, err
	}

	var prop ast.Prop
	if cfg.Formula != "" {
		prop, err = compileFormula(cfg.Formula)
		if err != nil {
			return 0, err
		}
	}

	total := 0
	for n := cfg.MinN; n <= cfg.MaxN; n++ {
		start, err := startingFamily(cfg.Start, n)
		if err != nil {
			return total, fmt.Errorf("starting family for n=%d: %w", n, err)
		}

		out, closeOut, err := openOutput(cfg.Output, n)
		if err != nil {
			return total, err
		}

		c := cache.New(cfg.CacheSize, policy)
		canonicalizer := canon.New(c)
		gen := generate.New(canonicalizer)

		var runErr error
		genCfg := generate.Config{N: n, Mode: mode, Start: start, Limit: cfg.Limit, BatchSize: cfg.BatchSize}
		gen.Run(genCfg, func(f family.Family, depth int) bool {
			emission := Emission{N: n, Family: f}

			if prop != nil {
				ev := eval.New(n, f)
				var res eval.Result
				var err error
				if cfg.VerifySAT {
					res, err = eval.CrossCheck(ev, prop)
				} else {
					res, err = ev.Check(prop)
				}
				if err != nil {
					runErr = err
					return false
				}
				if !res.Satisfied {
					return true // filtered out; keep enumerating
				}
				emission.Result = &res
			}

			total++
			writeEmission(out, emission)
			return sink(emission)
		})

		if closeOut != nil {
			closeOut()
		}
		if runErr != nil {
			return total, runErr
		}
	}
	return total, nil
}

// compileFormula parses and macro-expands formula source once, up front,
// so a single compiled ast.Prop is reused against every emitted family.
func compileFormula(formula string) (ast.Prop, error) {
	parsed, err := parser.Parse(formula)
	if err != nil {
		return nil, fmt.Errorf("parsing formula: %w", err)
	}
	expanded, err := macro.Expand(parsed)
	if err != nil {
		return nil, fmt.Errorf("expanding formula: %w", err)
	}
	if free := eval.FreeVariables(expanded); len(free) > 0 {
		return nil, fmt.Errorf("%w: %v", eval.ErrNotClosed, free)
	}
	return expanded, nil
}

// startingFamily parses text (if any) as the starting family for n,
// stripping ∅ if present: the search core never carries ∅ as a live
// element, per SPEC_FULL.md §3. An empty text defaults to {full}.
func startingFamily(text string, n int) (family.Family, error) {
	if text == "" {
		return family.New(n, []family.Open{family.Full(n)}), nil
	}
	f, err := family.Parse(text, n)
	if err != nil {
		return family.Family{}, err
	}
	if f.Contains(0) {
		f = f.WithoutAt(0)
	}
	return f, nil
}

// openOutput resolves cfg.Output's "{n}" template and opens the sink file,
// or returns os.Stdout (with a nil closer) when Output is empty.
func openOutput(pattern string, n int) (*os.File, func(), error) {
	if pattern == "" {
		return os.Stdout, nil, nil
	}
	path := strings.ReplaceAll(pattern, "{n}", strconv.Itoa(n))
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrOutputUnwritable, path, err)
	}
	return f, func() { f.Close() }, nil
}

// writeEmission renders one line for enumeration, or a satisfied/witness
// block for a formula-filtered run, per spec.md §6's output channel.
func writeEmission(out *os.File, e Emission) {
	if e.Result == nil {
		fmt.Fprintln(out, e.Family.String())
		return
	}
	fmt.Fprintf(out, "%s: satisfied", e.Family.String())
	for v, w := range e.Result.Witnesses {
		if w.Kind == eval.WitnessPoint {
			fmt.Fprintf(out, " %s=%d", v, w.Point)
		} else {
			fmt.Fprintf(out, " %s=%s", v, family.FormatOpen(w.Open, e.N))
		}
	}
	fmt.Fprintln(out)
}

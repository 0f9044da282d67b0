package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/eval"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/parser"
	"sheetcalc/internal/source"
	"sheetcalc/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz", input))
		bag := diag.NewBag(16)
		rep := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Resolver: fuzzResolver, Reporter: rep})

		expr, ok := parser.Parse(lx, parser.Options{Reporter: rep})
		if !ok {
			if bag.Len() != 1 {
				t.Fatalf("failed parse of %q produced %d diagnostics", input, bag.Len())
			}
			return
		}
		if bag.Len() != 0 {
			t.Fatalf("successful parse of %q produced diagnostics", input)
		}
		if err := testkit.CheckSpanInvariants(expr, file); err != nil {
			t.Fatalf("span invariants on %q: %v", input, err)
		}
		_ = eval.Eval(expr)
	})
}

// FuzzEvaluateUniformError checks that formula.Evaluate never panics and that
// every failure is an incorrect-formula error with a known kind.
func FuzzEvaluateUniformError(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		type outcome struct {
			v   float64
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			v, err := formula.Evaluate(string(input), fuzzResolver, formula.Options{})
			done <- outcome{v, err}
		}()

		select {
		case out := <-done:
			if out.err == nil {
				return
			}
			if !errors.Is(out.err, formula.ErrIncorrectFormula) {
				t.Fatalf("error %v for %q is not an incorrect-formula error", out.err, input)
			}
			if formula.KindOf(out.err) == diag.KindUnknown {
				t.Fatalf("error %v for %q has no kind", out.err, input)
			}
		case <-ctx.Done():
			t.Fatalf("evaluation hang detected after %v, input (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

package fuzztests

import (
	"testing"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Resolver: fuzzResolver, Reporter: diag.BagReporter{Bag: bag}})

		var prevEnd uint32
		for i := 0; ; i++ {
			if i > len(file.Content)+1 {
				t.Fatalf("lexer did not reach EOF on %q", input)
			}
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %v has span %v after offset %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF || tok.Kind == token.Invalid {
				break
			}
		}
		if lx.Invalid() != (bag.Len() == 1) {
			t.Fatalf("invalid=%v but %d diagnostics for %q", lx.Invalid(), bag.Len(), input)
		}
	})
}

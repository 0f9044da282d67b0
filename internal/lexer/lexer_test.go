package lexer_test

import (
	"math"
	"strings"
	"testing"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string, r cell.Resolver) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("A1", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Resolver: r, Reporter: reporter})
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF или Invalid
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func sameKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"spaces only", "   \t ", []token.Kind{token.EOF}},
		{"number", "42", []token.Kind{token.Number, token.EOF}},
		{"binary", "1 + 2*3", []token.Kind{token.Number, token.Plus, token.Number, token.Star, token.Number, token.EOF}},
		{"call", "pow(2,3)", []token.Kind{token.Function, token.LParen, token.Number, token.Comma, token.Number, token.RParen, token.EOF}},
		{"negation", "-(4/2)", []token.Kind{token.Minus, token.LParen, token.Number, token.Slash, token.Number, token.RParen, token.EOF}},
		{"unknown symbol", "1 % 2", []token.Kind{token.Number, token.Symbol, token.Number, token.EOF}},
		{"multibyte symbol", "1×2", []token.Kind{token.Number, token.Symbol, token.Number, token.EOF}},
		{"trailing spaces", "1   ", []token.Kind{token.Number, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input, cell.None)
			got := kinds(collectAllTokens(lx))
			if !sameKinds(got, tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", rep.diagnostics)
			}
		})
	}
}

func TestNumberValues(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"7", 7},
		{"3.25", 3.25},
		{"10.", 10},
		{"007", 7},
	}
	for _, tt := range tests {
		lx, _ := makeTestLexer(tt.input, cell.None)
		tok := lx.Next()
		if tok.Kind != token.Number || tok.Value != tt.want {
			t.Errorf("%q: got %v %v, want Number %v", tt.input, tok.Kind, tok.Value, tt.want)
		}
		if tok.Text != tt.input {
			t.Errorf("%q: text = %q", tt.input, tok.Text)
		}
	}
}

func TestBadNumberIsSticky(t *testing.T) {
	lx, rep := makeTestLexer("1.2.3 + 4", cell.None)

	first := lx.Next()
	if first.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", first.Kind)
	}
	if first.Span.Start != 0 || first.Span.End != 5 {
		t.Fatalf("span = %v, want 0..5", first.Span)
	}
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.Invalid {
			t.Fatalf("lexer recovered: got %v", tok.Kind)
		}
	}
	if !lx.Invalid() {
		t.Fatalf("Invalid() = false")
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestEOFRepeats(t *testing.T) {
	lx, _ := makeTestLexer("1", cell.None)
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("got %v after end", tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("abs(1)", cell.None)
	if p := lx.Peek(); p.Kind != token.Function || p.Func != token.Abs {
		t.Fatalf("peek = %+v", p)
	}
	if n := lx.Next(); n.Kind != token.Function {
		t.Fatalf("next after peek = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.LParen {
		t.Fatalf("second next = %v", n.Kind)
	}
}

func TestFunctionNames(t *testing.T) {
	for _, name := range []string{"abs", "sqrt", "round", "pow", "max", "min"} {
		lx, _ := makeTestLexer(name, cell.None)
		tok := lx.Next()
		if tok.Kind != token.Function || tok.Func.String() != name {
			t.Errorf("%s: got %v %v", name, tok.Kind, tok.Func)
		}
	}
}

func TestUnknownFunction(t *testing.T) {
	lx, rep := makeTestLexer("foo(1)", cell.None)
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
	d, ok := lx.Err()
	if !ok || d.Code != diag.LexUnknownFunction {
		t.Fatalf("Err() = %+v, %v", d, ok)
	}
	if len(d.Fixes) != 0 {
		t.Fatalf("unexpected fix for foo: %+v", d.Fixes)
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("reported %d diagnostics", len(rep.diagnostics))
	}
}

func TestUppercaseFunctionSuggestsFix(t *testing.T) {
	lx, _ := makeTestLexer("ABS(1)", cell.None)
	lx.Next()
	d, ok := lx.Err()
	if !ok || d.Code != diag.LexUnknownFunction {
		t.Fatalf("Err() = %+v, %v", d, ok)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "abs" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
}

type boundedResolver struct {
	cell.MapResolver
	cols, rows int
}

func (b boundedResolver) Dims() (int, int) { return b.cols, b.rows }

func TestReferenceResolution(t *testing.T) {
	r := cell.Cells(map[string]string{
		"A1": "5",
		"B2": " 2.5 ",
		"C3": "abc",
		"D4": "   ",
		"E5": "#INCORRECT_FORMULA",
		"F6": "1-2",
		"G7": "1_000",
		"H8": "-3",
		"I9": "0x10",
		"A2": ".5",
		"A3": "+1.5",
		"A4": "1e3",
		"A5": "1.2.3",
	})

	tests := []struct {
		input string
		code  diag.Code
		value float64
	}{
		{"$A1", 0, 5},
		{"$a1", 0, 5},
		{"$B2", 0, 2.5},
		{"$C3", diag.TypeNonNumericCell, 0},
		{"$D4", diag.RefEmptyCell, 0},
		{"$E5", diag.TypeNonNumericCell, 0},
		{"$F6", diag.TypeNonNumericCell, 0},
		{"$G7", diag.TypeNonNumericCell, 0},
		{"$H8", 0, -3},
		{"$I9", diag.TypeNonNumericCell, 0},
		{"$A2", 0, 0.5},
		{"$A3", 0, 1.5},
		{"$A4", diag.TypeNonNumericCell, 0},
		{"$A5", diag.TypeNonNumericCell, 0},
		{"$Z9", diag.RefEmptyCell, 0},
		{"$", diag.RefBadCoordinate, 0},
		{"$A", diag.RefBadCoordinate, 0},
		{"$12", diag.RefBadCoordinate, 0},
		{"$A0", diag.RefBadCoordinate, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input, r)
			tok := lx.Next()
			if tt.code == 0 {
				if !tok.IsRef() || tok.Value != tt.value {
					t.Fatalf("got %+v, want value %v", tok, tt.value)
				}
				return
			}
			if tok.Kind != token.Invalid {
				t.Fatalf("got %v, want Invalid", tok.Kind)
			}
			d, _ := lx.Err()
			if d.Code != tt.code {
				t.Fatalf("code = %v, want %v", d.Code, tt.code)
			}
		})
	}
}

func TestReferenceOutOfRange(t *testing.T) {
	r := boundedResolver{MapResolver: cell.Cells(map[string]string{"A1": "1"}), cols: 2, rows: 2}
	lx, _ := makeTestLexer("$C1", r)
	lx.Next()
	if d, _ := lx.Err(); d.Code != diag.RefOutOfRange {
		t.Fatalf("code = %v", d.Code)
	}
}

func TestSelfReferenceIsCircular(t *testing.T) {
	origin := cell.MustParseCoord("B2")
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("B2", []byte("$B2+1")))
	lx := lexer.New(file, lexer.Options{
		Resolver: cell.Cells(map[string]string{"B2": "3"}),
		Origin:   &origin,
	})
	lx.Next()
	if d, _ := lx.Err(); d.Code != diag.RefCircular {
		t.Fatalf("code = %v", d.Code)
	}
}

func TestNoResolutionAfterFailure(t *testing.T) {
	calls := 0
	r := cell.ResolverFunc(func(col, row int) (string, bool) {
		calls++
		return "1", true
	})
	lx, _ := makeTestLexer("foo + $A1", r)
	collectAllTokens(lx)
	lx.Next()
	if calls != 0 {
		t.Fatalf("resolver called %d times after failure", calls)
	}
}

func TestFullWidthReference(t *testing.T) {
	lx, _ := makeTestLexer("＄Ａ１", cell.Cells(map[string]string{"A1": "9"}))
	tok := lx.Next()
	if !tok.IsRef() || tok.Value != 9 {
		t.Fatalf("got %+v", tok)
	}
}

func TestHugeLiteralIsBadNumber(t *testing.T) {
	big := "1" + strings.Repeat("0", 400)
	lx, _ := makeTestLexer(big, cell.None)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("got %v %v", tok.Kind, tok.Value)
	}
	if math.IsInf(tok.Value, 0) {
		t.Fatalf("infinite value leaked")
	}
}

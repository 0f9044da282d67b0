package token_test

import (
	"testing"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/token"
)

func TestSymbolKind(t *testing.T) {
	cases := map[byte]token.Kind{
		'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
		'(': token.LParen, ')': token.RParen, ',': token.Comma,
		'%': token.Symbol, '^': token.Symbol, '.': token.Symbol,
	}
	for b, want := range cases {
		if got := token.SymbolKind(b); got != want {
			t.Errorf("SymbolKind(%q) = %v, want %v", b, got, want)
		}
		if !want.IsSymbol() {
			t.Errorf("%v should be a symbol kind", want)
		}
	}
	for _, k := range []token.Kind{token.Invalid, token.EOF, token.Number, token.Function} {
		if k.IsSymbol() {
			t.Errorf("%v must NOT be a symbol kind", k)
		}
	}
}

func TestBuiltins(t *testing.T) {
	arity := map[string]int{"abs": 1, "sqrt": 1, "round": 1, "pow": 2, "max": 2, "min": 2}
	for name, n := range arity {
		b, ok := token.LookupBuiltin(name)
		if !ok {
			t.Fatalf("%s not recognised", name)
		}
		if b.Arity() != n {
			t.Errorf("%s arity = %d, want %d", name, b.Arity(), n)
		}
		if b.String() != name {
			t.Errorf("String() = %q, want %q", b.String(), name)
		}
	}
	for _, name := range []string{"ABS", "Max", "sum", "avg", ""} {
		if _, ok := token.LookupBuiltin(name); ok {
			t.Errorf("%q must not be a builtin", name)
		}
	}
}

func TestTokenPayload(t *testing.T) {
	ref := cell.Coord{Col: 0, Row: 0}
	num := token.Token{Kind: token.Number, Text: "$A1", Value: 5, Ref: &ref}
	if !num.IsRef() || num.Symbol() != 0 {
		t.Errorf("reference token misclassified: %+v", num)
	}
	plus := token.Token{Kind: token.Plus, Text: "+"}
	if plus.Symbol() != '+' || plus.IsRef() {
		t.Errorf("symbol token misclassified: %+v", plus)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Error("unknown kind should render as Kind(?)")
	}
}

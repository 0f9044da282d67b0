package token

import (
	"sheetcalc/internal/cell"
	"sheetcalc/internal/source"
)

// Token represents a single formula token with its location and payload.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	Value float64     // Number
	Func  Builtin     // Function
	Ref   *cell.Coord // Number resolved from a "$A1" reference
}

// IsRef reports whether the token came from a cell reference.
func (t Token) IsRef() bool {
	return t.Kind == Number && t.Ref != nil
}

// Symbol returns the single character of a symbol token, or 0.
func (t Token) Symbol() byte {
	if !t.Kind.IsSymbol() || len(t.Text) == 0 {
		return 0
	}
	return t.Text[0]
}

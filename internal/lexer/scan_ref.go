package lexer

import (
	"strconv"
	"strings"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/token"
)

// scanReference: '$' letters digits. The referenced cell's displayed text is
// read through the Resolver and becomes a Number token. Nothing is
// re-evaluated here.
func (lx *Lexer) scanReference() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'

	for isLetterByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	invalid := token.Token{Kind: token.Invalid, Span: sp, Text: text}

	coord, err := cell.ParseCoord(text[1:])
	if err != nil || !coord.Valid() {
		lx.fail(diag.RefBadCoordinate, sp, "malformed cell reference "+strconv.Quote(text))
		return invalid
	}

	r := lx.opts.Resolver
	if r == nil {
		r = cell.None
	}
	if !cell.InBounds(r, coord) {
		lx.fail(diag.RefOutOfRange, sp, "cell "+coord.String()+" is outside the grid")
		return invalid
	}
	if o := lx.opts.Origin; o != nil && *o == coord {
		lx.fail(diag.RefCircular, sp, "cell "+coord.String()+" refers to itself")
		return invalid
	}

	raw, ok := r.Lookup(coord.Col, coord.Row)
	value := strings.TrimSpace(raw)
	if !ok || value == "" {
		lx.fail(diag.RefEmptyCell, sp, "cell "+coord.String()+" has no value")
		return invalid
	}
	v, err := strconv.ParseFloat(value, 64)
	if !isNumeral(value) || err != nil {
		lx.fail(diag.TypeNonNumericCell, sp, "cell "+coord.String()+" holds non-numeric value "+strconv.Quote(value))
		return invalid
	}

	c := coord
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: v, Ref: &c}
}

package lexer

import (
	"strconv"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/token"
)

// scanNumber: [0-9]+ ( '.' [0-9]* )?
// Вторая точка ("1.2.3") даёт LexBadNumber; весь хвост из цифр и точек попадает в span.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Eat('.') {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == '.' {
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.fail(diag.LexBadNumber, sp, "malformed number "+strconv.Quote(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// ParseFloat отдаёт ±Inf и ErrRange на слишком длинных литералах
		lx.fail(diag.LexBadNumber, sp, "number "+strconv.Quote(text)+" is out of range")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: v}
}

package lexer

import "sheetcalc/internal/token"

// scanSymbol emits one character. Unrecognised characters become Symbol
// tokens; rejecting them is the parser's job.
func (lx *Lexer) scanSymbol() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	b := lx.cursor.Peek()
	if b >= utf8RuneSelf {
		// keep multi-byte characters whole so spans never split a rune
		lx.bumpRune()
		return emit(token.Symbol)
	}
	lx.cursor.Bump()
	return emit(token.SymbolKind(b))
}

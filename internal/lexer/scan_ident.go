package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/fix"
	"sheetcalc/internal/token"
)

// scanFunctionName reads a run of letters and looks it up among the builtins.
// Names are case-sensitive; "ABS" is reported with a fix to "abs".
func (lx *Lexer) scanFunctionName() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isLetterByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !unicode.IsLetter(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	name := lx.text(sp)
	if fn, ok := token.LookupBuiltin(name); ok {
		return token.Token{Kind: token.Function, Span: sp, Text: name, Func: fn}
	}

	var fixes []diag.Fix
	if lower := strings.ToLower(name); lower != name {
		if _, ok := token.LookupBuiltin(lower); ok {
			fixes = append(fixes, fix.ReplaceSpan("use "+strconv.Quote(lower), sp, lower))
		}
	}
	lx.fail(diag.LexUnknownFunction, sp, "unknown function "+strconv.Quote(name), fixes...)
	return token.Token{Kind: token.Invalid, Span: sp, Text: name}
}

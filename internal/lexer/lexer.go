package lexer

import (
	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

// Lexer turns one formula text into tokens. It is built fresh for every
// evaluation and only moves forward.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	err    *diag.Diagnostic
	bad    token.Token // sticky Invalid token, valid once err != nil
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен.
// После EOF всегда возвращает EOF; после ошибки всегда возвращает Invalid.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return lx.bad
	}

	lx.skipSpace()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '$':
		tok = lx.scanReference()
	case isLetterByte(ch) || (ch >= utf8RuneSelf && lx.atLetterRune()):
		tok = lx.scanFunctionName()
	default:
		tok = lx.scanSymbol()
	}

	if lx.err != nil {
		lx.bad = token.Token{Kind: token.Invalid, Span: lx.err.Primary, Text: tok.Text}
		return lx.bad
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Invalid reports whether the lexer hit an error. The flag never resets.
func (lx *Lexer) Invalid() bool {
	return lx.err != nil
}

// Err returns the diagnostic that made the lexer invalid.
func (lx *Lexer) Err() (diag.Diagnostic, bool) {
	if lx.err == nil {
		return diag.Diagnostic{}, false
	}
	return *lx.err, true
}

// EmptySpan is a zero-width span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the text being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

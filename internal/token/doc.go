// Package token defines lexical token kinds for formulas.
// Invariants:
//   - Token.Text is a slice of the formula text (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - A cell reference never appears as its own kind: the lexer resolves it and
//     emits a Number whose Ref records the coordinate.
//   - Payload fields (Value, Func, Ref) outside the active kind are zero.
package token

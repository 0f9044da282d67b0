// Package lexer turns formula text into tokens.
//
// Cell references ("$A1") are resolved while tokenizing: the lexer reads the
// referenced cell's displayed text through a cell.Resolver and emits a Number.
// The first lexical, reference or type failure makes the lexer invalid for
// good; from then on Next returns the same Invalid token.
package lexer

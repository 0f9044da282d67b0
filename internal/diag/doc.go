// Package diag defines the diagnostic model shared by the lexer, the parser
// and the formula entry point.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as LEX1002 or REF3002.
//   - Message – short human oriented text.
//   - Primary span – the source.Span inside the formula text.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional text edits, e.g. the lowercase spelling of a builtin.
//
// Every Code belongs to exactly one Kind (lexical, reference, type, syntax,
// circular, limit). The formula package collapses all kinds into one
// "incorrect formula" outcome at its boundary but keeps the kind reachable.
//
// # Emitting diagnostics
//
// Phases report through a Reporter. BagReporter collects into a Bag, which
// supports sorting, merging and a capacity limit. Package diag does no
// rendering; that lives in internal/diagfmt.
package diag

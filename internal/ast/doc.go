// Package ast defines the formula expression tree produced by the parser and
// consumed by the evaluator.
package ast

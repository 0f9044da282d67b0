package ast

import (
	"sheetcalc/internal/cell"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

// Expr is a formula expression tree. The set of variants is closed: only the
// types in this file implement it. Every node owns its operands exclusively.
type Expr interface {
	Span() source.Span
	Kind() ExprKind
	exprNode()
}

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprUnary
	ExprBinary
	ExprCall1
	ExprCall2
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Literal"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCall1:
		return "Call1"
	case ExprCall2:
		return "Call2"
	default:
		return "ExprKind(?)"
	}
}

// Literal is a number, either written inline or read from a referenced cell.
type Literal struct {
	Sp    source.Span
	Value float64
	Ref   *cell.Coord // non-nil when the value came from "$A1"
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNeg {
		return "-"
	}
	return "?"
}

// Unary is a prefix operation; negation is the only one.
type Unary struct {
	Sp source.Span
	Op ExprUnaryOp
	X  Expr
}

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	default:
		return "?"
	}
}

type Binary struct {
	Sp source.Span
	Op ExprBinaryOp
	X  Expr
	Y  Expr
}

// Call1 applies a one-argument builtin: abs, sqrt or round.
type Call1 struct {
	Sp  source.Span
	Fn  token.Builtin
	Arg Expr
}

// Call2 applies a two-argument builtin: pow, max or min.
type Call2 struct {
	Sp source.Span
	Fn token.Builtin
	A  Expr
	B  Expr
}

func (e *Literal) Span() source.Span { return e.Sp }
func (e *Unary) Span() source.Span   { return e.Sp }
func (e *Binary) Span() source.Span  { return e.Sp }
func (e *Call1) Span() source.Span   { return e.Sp }
func (e *Call2) Span() source.Span   { return e.Sp }

func (*Literal) Kind() ExprKind { return ExprLit }
func (*Unary) Kind() ExprKind   { return ExprUnary }
func (*Binary) Kind() ExprKind  { return ExprBinary }
func (*Call1) Kind() ExprKind   { return ExprCall1 }
func (*Call2) Kind() ExprKind   { return ExprCall2 }

func (*Literal) exprNode() {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
func (*Call1) exprNode()   {}
func (*Call2) exprNode()   {}

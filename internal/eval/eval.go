// Package eval computes the value of a parsed formula tree.
//
// Evaluation is pure: every cell value was read while tokenizing, so a tree
// always yields the same number. Arithmetic follows IEEE-754 without traps;
// division by zero gives ±Inf or NaN.
package eval

import (
	"fmt"
	"math"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/token"
)

// Eval returns the value of e, operands first.
func Eval(e ast.Expr) float64 {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value
	case *ast.Unary:
		return unary(n.Op, Eval(n.X))
	case *ast.Binary:
		return binary(n.Op, Eval(n.X), Eval(n.Y))
	case *ast.Call1:
		return call1(n.Fn, Eval(n.Arg))
	case *ast.Call2:
		return call2(n.Fn, Eval(n.A), Eval(n.B))
	default:
		panic(fmt.Sprintf("eval: unexpected node %T", e))
	}
}

func unary(op ast.ExprUnaryOp, x float64) float64 {
	switch op {
	case ast.ExprUnaryNeg:
		return -x
	default:
		panic(fmt.Sprintf("eval: unexpected unary op %d", op))
	}
}

func binary(op ast.ExprBinaryOp, x, y float64) float64 {
	switch op {
	case ast.ExprBinaryAdd:
		return x + y
	case ast.ExprBinarySub:
		return x - y
	case ast.ExprBinaryMul:
		return x * y
	case ast.ExprBinaryDiv:
		return x / y
	default:
		panic(fmt.Sprintf("eval: unexpected binary op %d", op))
	}
}

// round uses ties-to-even: round(2.5) = 2, round(3.5) = 4.
func call1(fn token.Builtin, x float64) float64 {
	switch fn {
	case token.Abs:
		return math.Abs(x)
	case token.Sqrt:
		return math.Sqrt(x)
	case token.Round:
		return math.RoundToEven(x)
	default:
		panic(fmt.Sprintf("eval: %s is not a one-argument function", fn))
	}
}

func call2(fn token.Builtin, a, b float64) float64 {
	switch fn {
	case token.Pow:
		return math.Pow(a, b)
	case token.Max:
		return math.Max(a, b)
	case token.Min:
		return math.Min(a, b)
	default:
		panic(fmt.Sprintf("eval: %s is not a two-argument function", fn))
	}
}

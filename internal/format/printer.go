package format

import (
	"strconv"
	"strings"

	"sheetcalc/internal/ast"
)

const (
	precAdd = 1
	precMul = 2
)

// Formula renders e with single spaces around binary operators, ", " between
// arguments and only the parentheses the grouping needs. References print as
// "$A1". Parsing the result yields a tree of the same shape.
func Formula(e ast.Expr) string {
	if e == nil {
		return ""
	}
	var p printer
	p.expr(e)
	return p.sb.String()
}

type printer struct {
	sb strings.Builder
}

func (p *printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		if n.Ref != nil {
			p.sb.WriteByte('$')
			p.sb.WriteString(n.Ref.String())
			return
		}
		p.sb.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *ast.Unary:
		p.sb.WriteString(n.Op.String())
		p.operand(n.X, func(x ast.Expr) bool { return x.Kind() == ast.ExprBinary })
	case *ast.Binary:
		prec := binaryPrec(n.Op)
		// left-associative: a right operand of equal precedence keeps its parens
		p.operand(n.X, func(x ast.Expr) bool { return exprPrec(x) < prec })
		p.sb.WriteByte(' ')
		p.sb.WriteString(n.Op.String())
		p.sb.WriteByte(' ')
		p.operand(n.Y, func(x ast.Expr) bool { return exprPrec(x) <= prec })
	case *ast.Call1:
		p.sb.WriteString(n.Fn.String())
		p.sb.WriteByte('(')
		p.expr(n.Arg)
		p.sb.WriteByte(')')
	case *ast.Call2:
		p.sb.WriteString(n.Fn.String())
		p.sb.WriteByte('(')
		p.expr(n.A)
		p.sb.WriteString(", ")
		p.expr(n.B)
		p.sb.WriteByte(')')
	}
}

func (p *printer) operand(x ast.Expr, needParens func(ast.Expr) bool) {
	if !needParens(x) {
		p.expr(x)
		return
	}
	p.sb.WriteByte('(')
	p.expr(x)
	p.sb.WriteByte(')')
}

func binaryPrec(op ast.ExprBinaryOp) int {
	if op == ast.ExprBinaryMul || op == ast.ExprBinaryDiv {
		return precMul
	}
	return precAdd
}

// exprPrec is the binding strength of x as an operand; anything that is not a
// binary expression binds tighter than every operator.
func exprPrec(x ast.Expr) int {
	if b, ok := x.(*ast.Binary); ok {
		return binaryPrec(b.Op)
	}
	return precMul + 1
}

package parser

import (
	"sheetcalc/internal/ast"
	"sheetcalc/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет. Правый операнд разбирается с prec+1,
// поэтому все операторы левоассоциативны.
const (
	precNone           = -1
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
)

// binaryPrec возвращает приоритет оператора или precNone
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	default:
		return precNone
	}
}

// binaryOp преобразует токен в тип бинарного оператора
func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	default:
		panic("parser: not a binary operator: " + kind.String())
	}
}

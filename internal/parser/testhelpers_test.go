package parser_test

import (
	"fmt"
	"strconv"
	"testing"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/parser"
	"sheetcalc/internal/source"
)

// parseSource парсит формулу и возвращает дерево и собранные диагностики
func parseSource(t *testing.T, input string, r cell.Resolver) (ast.Expr, bool, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("A1", []byte(input)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Resolver: r, Reporter: rep})
	expr, ok := parser.Parse(lx, parser.Options{Reporter: rep})
	return expr, ok, bag
}

// sexpr renders a tree as an s-expression for compact assertions.
func sexpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Literal:
		if n.Ref != nil {
			return "$" + n.Ref.String()
		}
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.Unary:
		return fmt.Sprintf("(%s %s)", n.Op, sexpr(n.X))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.X), sexpr(n.Y))
	case *ast.Call1:
		return fmt.Sprintf("(%s %s)", n.Fn, sexpr(n.Arg))
	case *ast.Call2:
		return fmt.Sprintf("(%s %s %s)", n.Fn, sexpr(n.A), sexpr(n.B))
	default:
		return "?"
	}
}

func firstCode(bag *diag.Bag) diag.Code {
	items := bag.Items()
	if len(items) == 0 {
		return 0
	}
	return items[0].Code
}

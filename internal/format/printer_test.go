package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/cell"
	"sheetcalc/internal/format"
	"sheetcalc/internal/formula"
)

func TestFormulaCanonical(t *testing.T) {
	r := cell.Cells(map[string]string{"A1": "5", "B2": "2"})

	tests := []struct {
		input string
		want  string
	}{
		{"1+2*3", "1 + 2 * 3"},
		{"(1+2)*3", "(1 + 2) * 3"},
		{"((1))", "1"},
		{"8-(3-2)", "8 - (3 - 2)"},
		{"(8-3)-2", "8 - 3 - 2"},
		{"8/(4*2)", "8 / (4 * 2)"},
		{"-(3+4)", "-(3 + 4)"},
		{"--1", "--1"},
		{"2 - -1", "2 - -1"},
		{"-2*3", "-2 * 3"},
		{"max( 3 ,7 )", "max(3, 7)"},
		{"pow(1+1,3)", "pow(1 + 1, 3)"},
		{"$a1*$B2", "$A1 * $B2"},
		{"0.50+1.25", "0.5 + 1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checked := formula.Check(tt.input, r, formula.Options{}, 0)
			require.NotNil(t, checked.Tree, "parse failed: %v", checked.Err())
			got := format.Formula(checked.Tree)
			require.Equal(t, tt.want, got)

			again := formula.Check(got, r, formula.Options{}, 0)
			require.NotNil(t, again.Tree)
			require.Equal(t, shape(checked.Tree), shape(again.Tree))
			require.Equal(t, checked.Value, again.Value)
		})
	}
}

func TestFormulaNil(t *testing.T) {
	require.Empty(t, format.Formula(nil))
}

func shape(e ast.Expr) []ast.ExprKind {
	var kinds []ast.ExprKind
	ast.Walk(e, func(x ast.Expr) bool {
		kinds = append(kinds, x.Kind())
		return true
	})
	return kinds
}

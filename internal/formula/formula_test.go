package formula_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
)

func TestEvaluateValues(t *testing.T) {
	grid := cell.Cells(map[string]string{"A1": "5", "B1": "-2.5", "C3": "14.0"})

	cases := map[string]float64{
		"2+3*4":                     14,
		"8-3-2":                     3,
		"8/4/2":                     1,
		"(2+3)*4":                   20,
		"-(3+4)":                    -7,
		"5*-2":                      -10,
		"abs(-5)+1":                 6,
		"max(3,7)":                  7,
		"min(3,7)":                  3,
		"pow(2,10)":                 1024,
		"pow(1+1, 3)":               8,
		"sqrt(16)+round(2.5)":       6,
		"$A1*2":                     10,
		"$a1 + $B1":                 2.5,
		"$C3/7":                     2,
		"abs($B1) * max($A1, $C3)":  35,
		"  1 +   2  ":               3,
	}
	for text, want := range cases {
		t.Run(text, func(t *testing.T) {
			got, err := formula.Evaluate(text, grid, formula.Options{})
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEvaluateFailuresAreUniform(t *testing.T) {
	grid := cell.Cells(map[string]string{"A1": "hello"})

	cases := map[string]diag.Kind{
		"2+":           diag.KindSyntax,
		"*3":           diag.KindSyntax,
		"unknownfn(1)": diag.KindLexical,
		"1.2.3":        diag.KindLexical,
		"$A1+1":        diag.KindType,
		"$B7":          diag.KindReference,
		"(1":           diag.KindSyntax,
		"pow(2)":       diag.KindSyntax,
	}
	for text, kind := range cases {
		t.Run(text, func(t *testing.T) {
			v, err := formula.Evaluate(text, grid, formula.Options{})
			require.Error(t, err)
			assert.Zero(t, v)
			assert.True(t, errors.Is(err, formula.ErrIncorrectFormula))
			assert.Equal(t, kind, formula.KindOf(err))
			assert.Equal(t, formula.Sentinel, formula.Display(v, err))
		})
	}
}

type sized struct {
	cell.MapResolver
}

func (sized) Dims() (int, int) { return 3, 3 }

func TestOutOfRangeAndCircular(t *testing.T) {
	grid := sized{cell.Cells(map[string]string{"A1": "1"})}

	_, err := formula.Evaluate("$D1", grid, formula.Options{})
	var fe *formula.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, diag.RefOutOfRange, fe.Code)
	assert.Equal(t, diag.KindReference, fe.Kind)

	origin := cell.MustParseCoord("A1")
	_, err = formula.Evaluate("$A1+1", grid, formula.Options{Origin: &origin})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, diag.KindCircular, fe.Kind)
	assert.Contains(t, err.Error(), "REF3004")
}

func TestEvaluateIsIdempotent(t *testing.T) {
	grid := cell.Cells(map[string]string{"A1": "3", "A2": "4"})
	first, err1 := formula.Evaluate("sqrt(pow($A1,2)+pow($A2,2))", grid, formula.Options{})
	second, err2 := formula.Evaluate("sqrt(pow($A1,2)+pow($A2,2))", grid, formula.Options{})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, 5.0, first)
}

func TestResolverReadsDisplayedValueOnly(t *testing.T) {
	calls := 0
	r := cell.ResolverFunc(func(col, row int) (string, bool) {
		calls++
		return "=1+1", true
	})
	_, err := formula.Evaluate("$A1", r, formula.Options{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDivisionByZeroIsAValue(t *testing.T) {
	v, err := formula.Evaluate("1/0", cell.None, formula.Options{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
	assert.Equal(t, "+Inf", formula.Display(v, err))
}

func TestDisplayAndStrip(t *testing.T) {
	assert.Equal(t, "14", formula.Display(14, nil))
	assert.Equal(t, "0.1", formula.Display(0.1, nil))
	assert.Equal(t, "1000000000000000000000", formula.FormatValue(1e21))
	assert.Equal(t, "2+2", formula.Strip("=2+2"))
	assert.True(t, formula.IsFormula("=1"))
	assert.False(t, formula.IsFormula("1"))
}

func TestCheckCollectsDiagnosticsAndTree(t *testing.T) {
	res := formula.Check("max(1, 2) * 3", cell.None, formula.Options{Name: "B2"}, 0)
	require.NotNil(t, res.Tree)
	assert.False(t, res.Bag.HasErrors())
	assert.Equal(t, 6.0, res.Value)
	assert.Equal(t, "B2", res.File.Path)
	assert.NoError(t, res.Err())

	bad := formula.Check("ABS(1)", cell.None, formula.Options{}, 0)
	assert.Nil(t, bad.Tree)
	require.Equal(t, 1, bad.Bag.Len())
	d := bad.Bag.Items()[0]
	assert.Equal(t, diag.LexUnknownFunction, d.Code)
	require.Len(t, d.Fixes, 1)
	assert.ErrorIs(t, bad.Err(), formula.ErrIncorrectFormula)
	assert.Equal(t, diag.KindLexical, formula.KindOf(bad.Err()))
}

func TestReporterSeesDiagnostics(t *testing.T) {
	bag := diag.NewBag(4)
	_, err := formula.Evaluate("1+", cell.None, formula.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	assert.Equal(t, 1, bag.Len())
}

func TestNestingLimitWinsOverLaterTokens(t *testing.T) {
	text := strings.Repeat("(", 4) + "foo"
	_, err := formula.Evaluate(text, cell.None, formula.Options{MaxDepth: 3})
	var fe *formula.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, diag.KindLimit, fe.Kind)
	assert.Equal(t, diag.SynTooDeep, fe.Code)

	res := formula.Check(text, cell.None, formula.Options{MaxDepth: 3}, 0)
	assert.Equal(t, 1, res.Bag.Len())
}

func TestUnderscoreNumeralIsNotNumeric(t *testing.T) {
	grid := cell.Cells(map[string]string{"G1": "1_000", "G2": "1_0"})
	for _, text := range []string{"$G1", "$G2"} {
		_, err := formula.Evaluate(text, grid, formula.Options{})
		var fe *formula.Error
		require.ErrorAs(t, err, &fe, text)
		assert.Equal(t, diag.TypeNonNumericCell, fe.Code, text)
	}
}

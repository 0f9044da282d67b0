package grid

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/formula"
)

func TestSetEvaluatesFormulas(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "5"))
	require.NoError(t, s.SetA1("B1", "=$A1*2"))

	assert.Equal(t, "10", s.Display(cell.MustParseCoord("B1")))
	assert.Equal(t, "=$A1*2", s.Raw(cell.MustParseCoord("B1")))
}

func TestFailedFormulaShowsSentinel(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "hello"))

	err := s.SetA1("B1", "=$A1+1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, formula.ErrIncorrectFormula))
	assert.Equal(t, formula.Sentinel, s.Display(cell.MustParseCoord("B1")))
	assert.Error(t, s.Err(cell.MustParseCoord("B1")))

	// the rest of the grid stays usable
	require.NoError(t, s.SetA1("C1", "=1+1"))
	assert.Equal(t, "2", s.Display(cell.MustParseCoord("C1")))
}

func TestCustomSentinelAndSelfReference(t *testing.T) {
	s := NewSheet(Options{Sentinel: "#ERR"})
	err := s.SetA1("A1", "=$A1+1")
	assert.Equal(t, "#ERR", s.Display(cell.MustParseCoord("A1")))
	assert.Contains(t, err.Error(), "circular")
}

func TestNoPropagation(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "1"))
	require.NoError(t, s.SetA1("B1", "=$A1+1"))
	require.NoError(t, s.SetA1("A1", "100"))

	assert.Equal(t, "2", s.Display(cell.MustParseCoord("B1")))
}

func TestFormulaReadsDisplayedValue(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "=2*3"))
	require.NoError(t, s.SetA1("A2", "=$A1+1"))
	assert.Equal(t, "7", s.Display(cell.MustParseCoord("A2")))

	require.Error(t, s.SetA1("A3", "=1+"))
	err := s.SetA1("A4", "=$A3")
	assert.Equal(t, formula.Sentinel, s.Display(cell.MustParseCoord("A4")))
	assert.Error(t, err)
}

func TestBoundsAndBlankCells(t *testing.T) {
	s := NewSheet(Options{Rows: 2, Cols: 2})
	assert.ErrorIs(t, s.SetA1("C1", "1"), ErrOutOfGrid)

	require.NoError(t, s.SetA1("A1", "  "))
	_, ok := s.Lookup(0, 0)
	assert.False(t, ok)

	err := s.SetA1("B2", "=$C1")
	var fe *formula.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "REF3002", fe.Code.ID())

	require.NoError(t, s.SetA1("A1", "3"))
	s.Clear(cell.MustParseCoord("A1"))
	assert.Equal(t, 1, s.Len())
}

func TestSnapshotIsFrozen(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "1"))
	snap := s.Snapshot()
	require.NoError(t, s.SetA1("A1", "2"))

	v, err := formula.Evaluate("$A1", snap, formula.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	cols, rows := snap.Dims()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := NewSheet(Options{})
	require.NoError(t, s.SetA1("A1", "1"))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := cell.Coord{Col: 1, Row: i}
			_ = s.Set(c, "=$A1+1")
			_ = s.Table()
		}(i)
	}
	wg.Wait()

	for i := range 8 {
		assert.Equal(t, "2", s.Display(cell.Coord{Col: 1, Row: i}))
	}
}

func TestTable(t *testing.T) {
	s := NewSheet(Options{Rows: 2, Cols: 3})
	require.NoError(t, s.SetA1("C2", "x"))
	table := s.Table()
	require.Len(t, table, 2)
	require.Len(t, table[1], 3)
	assert.Equal(t, "x", table[1][2])
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(DefaultRows, DefaultCols))
	assert.NoError(t, CheckSize(MaxCells, 1))
	assert.ErrorIs(t, CheckSize(0, 5), ErrGridSize)
	assert.ErrorIs(t, CheckSize(MaxCells, 2), ErrGridSize)
	assert.ErrorIs(t, CheckSize(1<<40, 1<<40), ErrGridSize)

	s := NewSheet(Options{Rows: 1 << 30, Cols: 1 << 30})
	cols, rows := s.Dims()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)
}

// Package grid is the table that formulas are typed into. It stores each
// cell's raw text and displayed value, evaluates formulas on entry and serves
// displayed values to the formula engine as a cell.Resolver.
package grid

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
)

const (
	DefaultRows = 30
	DefaultCols = 10
	// MaxCells bounds rows*cols; Table materialises every cell.
	MaxCells = 1 << 20
)

var (
	// ErrOutOfGrid is returned when writing outside the sheet.
	ErrOutOfGrid = errors.New("cell outside the grid")
	ErrGridSize  = errors.New("grid size out of range")
)

// CheckSize reports whether a rows x cols sheet may be created.
func CheckSize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d, rows and cols must be positive", ErrGridSize, rows, cols)
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridSize, rows, cols, MaxCells)
	}
	return nil
}

type Options struct {
	Rows int
	Cols int
	// Sentinel replaces the value of a failed formula; defaults to formula.Sentinel.
	Sentinel string
	// MaxDepth is passed to the formula parser.
	MaxDepth int
	// Reporter receives diagnostics of every evaluated formula.
	Reporter diag.Reporter
}

type entry struct {
	raw     string
	display string
	err     error
}

// Sheet is safe for concurrent use. Every Lookup is a consistent read of a
// single cell; writes never propagate to dependent cells.
type Sheet struct {
	mu    sync.RWMutex
	opts  Options
	cells map[cell.Coord]entry
}

func NewSheet(opts Options) *Sheet {
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Sentinel == "" {
		opts.Sentinel = formula.Sentinel
	}
	if CheckSize(opts.Rows, opts.Cols) != nil {
		opts.Rows, opts.Cols = DefaultRows, DefaultCols
	}
	return &Sheet{opts: opts, cells: make(map[cell.Coord]entry)}
}

// Dims implements cell.Bounded.
func (s *Sheet) Dims() (cols, rows int) {
	return s.opts.Cols, s.opts.Rows
}

func (s *Sheet) contains(c cell.Coord) bool {
	return c.Valid() && c.Col < s.opts.Cols && c.Row < s.opts.Rows
}

// Set stores raw text. Text starting with '=' is evaluated against the
// current grid and its value (or the sentinel) becomes the display; anything
// else is displayed as typed. The returned error is the formula failure, if
// any; the cell is still updated.
func (s *Sheet) Set(c cell.Coord, raw string) error {
	if !s.contains(c) {
		return fmt.Errorf("set %s: %w", c, ErrOutOfGrid)
	}

	e := entry{raw: raw, display: raw}
	if formula.IsFormula(raw) {
		origin := c
		v, err := formula.Evaluate(formula.Strip(raw), s, formula.Options{
			Origin:   &origin,
			MaxDepth: s.opts.MaxDepth,
			Reporter: s.opts.Reporter,
		})
		e.err = err
		e.display = s.render(v, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(raw) == "" {
		delete(s.cells, c)
		return nil
	}
	s.cells[c] = e
	return e.err
}

func (s *Sheet) render(v float64, err error) string {
	if err != nil {
		return s.opts.Sentinel
	}
	return formula.FormatValue(v)
}

// SetA1 is Set addressed in A1 notation.
func (s *Sheet) SetA1(ref, raw string) error {
	c, err := cell.ParseCoord(ref)
	if err != nil {
		return err
	}
	return s.Set(c, raw)
}

// Clear empties a cell.
func (s *Sheet) Clear(c cell.Coord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, c)
}

// Get returns the raw and displayed text of a cell.
func (s *Sheet) Get(c cell.Coord) (raw, display string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cells[c]
	return e.raw, e.display, ok
}

// Raw returns the text as typed.
func (s *Sheet) Raw(c cell.Coord) string {
	raw, _, _ := s.Get(c)
	return raw
}

// Display returns what the cell shows.
func (s *Sheet) Display(c cell.Coord) string {
	_, display, _ := s.Get(c)
	return display
}

// Err returns the failure of the cell's formula, or nil.
func (s *Sheet) Err(c cell.Coord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cells[c].err
}

// Lookup implements cell.Resolver with displayed values. Blank cells are absent.
func (s *Sheet) Lookup(col, row int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cells[cell.Coord{Col: col, Row: row}]
	if !ok || strings.TrimSpace(e.display) == "" {
		return "", false
	}
	return e.display, true
}

// Len returns the number of non-empty cells.
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Table returns the displayed values row by row.
func (s *Sheet) Table() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]string, s.opts.Rows)
	for r := range out {
		out[r] = make([]string, s.opts.Cols)
	}
	for c, e := range s.cells {
		out[c.Row][c.Col] = e.display
	}
	return out
}

package grid

import "sheetcalc/internal/cell"

// Snapshot is a frozen copy of a sheet's displayed values. It is immutable,
// so any number of goroutines may evaluate against it.
type Snapshot struct {
	cols, rows int
	values     map[cell.Coord]string
}

// Snapshot copies the current displayed values.
func (s *Sheet) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make(map[cell.Coord]string, len(s.cells))
	for c, e := range s.cells {
		values[c] = e.display
	}
	return &Snapshot{cols: s.opts.Cols, rows: s.opts.Rows, values: values}
}

func (s *Snapshot) Dims() (cols, rows int) {
	return s.cols, s.rows
}

func (s *Snapshot) Lookup(col, row int) (string, bool) {
	v, ok := s.values[cell.Coord{Col: col, Row: row}]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

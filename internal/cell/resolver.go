package cell

// Resolver maps a zero-based grid position to the cell's currently displayed
// text. ok is false when the position holds no value.
type Resolver interface {
	Lookup(col, row int) (text string, ok bool)
}

// Bounded is implemented by resolvers that know their grid size, so an
// out-of-grid reference can be told apart from an empty cell.
type Bounded interface {
	Dims() (cols, rows int)
}

// InBounds reports whether c lies inside r's grid. Unbounded resolvers accept
// every valid coordinate.
func InBounds(r Resolver, c Coord) bool {
	if !c.Valid() {
		return false
	}
	b, ok := r.(Bounded)
	if !ok {
		return true
	}
	cols, rows := b.Dims()
	return c.Col < cols && c.Row < rows
}

// MapResolver is a resolver over a fixed set of cells, keyed by coordinate.
type MapResolver map[Coord]string

// Lookup implements Resolver.
func (m MapResolver) Lookup(col, row int) (string, bool) {
	v, ok := m[Coord{Col: col, Row: row}]
	return v, ok
}

// Cells builds a MapResolver from A1-notation keys; it panics on a bad key.
func Cells(kv map[string]string) MapResolver {
	m := make(MapResolver, len(kv))
	for k, v := range kv {
		m[MustParseCoord(k)] = v
	}
	return m
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(col, row int) (string, bool)

// Lookup implements Resolver.
func (f ResolverFunc) Lookup(col, row int) (string, bool) {
	return f(col, row)
}

// None resolves nothing; formulas without references evaluate fine against it.
var None Resolver = ResolverFunc(func(int, int) (string, bool) { return "", false })

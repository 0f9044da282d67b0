// Package cell holds grid coordinates and the Cell Resolver capability the
// tokenizer reads referenced values through.
package cell

import (
	"errors"
	"fmt"
	"strconv"
)

// Coord is a zero-based (column, row) grid position.
type Coord struct {
	Col int
	Row int
}

var (
	// ErrBadCoord is returned for text that is not letters followed by digits.
	ErrBadCoord = errors.New("malformed cell coordinate")
)

// maxColumnLetters bounds the column part; "ZZZZZZ" already exceeds any real grid.
const maxColumnLetters = 6

// ParseCoord decodes "A1", "ab23" and friends. Letters are case-insensitive
// and bijective base-26 (A=0 … Z=25, AA=26); digits are a 1-based row.
func ParseCoord(text string) (Coord, error) {
	i := 0
	for i < len(text) && isLetter(text[i]) {
		i++
	}
	letters, digits := text[:i], text[i:]
	if letters == "" || digits == "" || len(letters) > maxColumnLetters {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, text)
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, text)
		}
	}

	col := 0
	for j := 0; j < len(letters); j++ {
		col = col*26 + int(upper(letters[j])-'A') + 1
	}
	row, err := strconv.Atoi(digits)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, text)
	}
	return Coord{Col: col - 1, Row: row - 1}, nil
}

// MustParseCoord is ParseCoord for literals in tests and fixtures.
func MustParseCoord(text string) Coord {
	c, err := ParseCoord(text)
	if err != nil {
		panic(err)
	}
	return c
}

// ColumnName renders a zero-based column index as letters.
func ColumnName(col int) string {
	if col < 0 {
		return "?"
	}
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// String renders the coordinate in A1 notation.
func (c Coord) String() string {
	return ColumnName(c.Col) + strconv.Itoa(c.Row+1)
}

// Valid reports whether both indices are non-negative.
func (c Coord) Valid() bool {
	return c.Col >= 0 && c.Row >= 0
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

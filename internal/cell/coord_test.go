package cell

import (
	"errors"
	"testing"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in   string
		want Coord
	}{
		{"A1", Coord{0, 0}},
		{"a1", Coord{0, 0}},
		{"B3", Coord{1, 2}},
		{"Z10", Coord{25, 9}},
		{"AA1", Coord{26, 0}},
		{"ab23", Coord{27, 22}},
		{"A0", Coord{0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoord(tt.in)
			if err != nil {
				t.Fatalf("ParseCoord(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCoord(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCoordRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "A", "12", "1A", "A1B", "A-1", "ABCDEFG1"} {
		if _, err := ParseCoord(in); !errors.Is(err, ErrBadCoord) {
			t.Errorf("ParseCoord(%q) err = %v, want ErrBadCoord", in, err)
		}
	}
}

func TestCoordRoundTrip(t *testing.T) {
	for _, in := range []string{"A1", "Z26", "AA1", "AZ7", "BA100", "ZZ3", "AAA1"} {
		if got := MustParseCoord(in).String(); got != in {
			t.Errorf("round trip %q = %q", in, got)
		}
	}
	if got := ColumnName(-1); got != "?" {
		t.Errorf("ColumnName(-1) = %q", got)
	}
}

func TestInBounds(t *testing.T) {
	m := Cells(map[string]string{"A1": "5"})
	if !InBounds(m, Coord{Col: 1000, Row: 1000}) {
		t.Error("unbounded resolver must accept any coordinate")
	}
	if InBounds(m, Coord{Col: 0, Row: -1}) {
		t.Error("negative row accepted")
	}
	if v, ok := m.Lookup(0, 0); !ok || v != "5" {
		t.Errorf("Lookup(0, 0) = %q, %v", v, ok)
	}
	if _, ok := None.Lookup(0, 0); ok {
		t.Error("None must resolve nothing")
	}
}

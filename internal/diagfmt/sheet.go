package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sheetcalc/internal/cell"
)

const maxCellWidth = 24

// SheetCellJSON is one non-empty cell in `sheet --format json`.
type SheetCellJSON struct {
	Ref     string `json:"ref"`
	Raw     string `json:"raw"`
	Display string `json:"display"`
	Error   string `json:"error,omitempty"`
}

// usedExtent returns the smallest rows×cols box holding every non-empty cell.
func usedExtent(table [][]string) (rows, cols int) {
	for r, row := range table {
		for c, v := range row {
			if v != "" {
				rows = max(rows, r+1)
				cols = max(cols, c+1)
			}
		}
	}
	return rows, cols
}

// FormatSheet prints the used part of a grid with column letters and row
// numbers. Cells equal to sentinel are highlighted.
func FormatSheet(w io.Writer, table [][]string, sentinel string, useColor bool) error {
	rows, cols := usedExtent(table)
	if rows == 0 {
		_, err := fmt.Fprintln(w, "(empty sheet)")
		return err
	}

	header := color.New(color.Bold)
	bad := color.New(color.FgRed)
	for _, c := range []*color.Color{header, bad} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	widths := make([]int, cols)
	for c := range widths {
		widths[c] = runewidth.StringWidth(cell.ColumnName(c))
		for r := 0; r < rows; r++ {
			widths[c] = max(widths[c], min(runewidth.StringWidth(table[r][c]), maxCellWidth))
		}
	}
	gutter := len(strconv.Itoa(rows))

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutter))
	for c := 0; c < cols; c++ {
		sb.WriteString(" | ")
		sb.WriteString(header.Sprint(runewidth.FillRight(cell.ColumnName(c), widths[c])))
	}
	sb.WriteString("\n")
	for r := 0; r < rows; r++ {
		sb.WriteString(header.Sprint(fmt.Sprintf("%*d", gutter, r+1)))
		for c := 0; c < cols; c++ {
			v := runewidth.FillRight(runewidth.Truncate(table[r][c], widths[c], "…"), widths[c])
			if table[r][c] == sentinel {
				v = bad.Sprint(v)
			}
			sb.WriteString(" | ")
			sb.WriteString(v)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatSheetJSON writes cells as a JSON array.
func FormatSheetJSON(w io.Writer, cells []SheetCellJSON) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cells)
}

package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/formula"
)

// Input is one formula of a batch.
type Input struct {
	// Label names the formula in output; a cell label like "B2" also
	// makes that cell the origin for circularity checks.
	Label string
	// Text is the formula without its leading '='.
	Text   string
	Origin *cell.Coord
	Line   int
}

// Name is what diagnostics show as the file name.
func (in Input) Name() string {
	return in.Label
}

var ErrNoFormulas = errors.New("no formulas")

// ReadFormulas parses a formula list. Each non-blank line that is not a
// '#' comment holds a formula, optionally prefixed by a label:
//
//	=1 + 2
//	B2: =$A1 * 2
//	total: max($A1, $B1)
//
// The leading '=' is optional. Unlabelled lines are named after their line
// number.
func ReadFormulas(r io.Reader) ([]Input, error) {
	var inputs []Input
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		in := Input{Line: line, Label: "#" + strconv.Itoa(line)}
		if label, rest, ok := splitLabel(text); ok {
			in.Label = label
			text = rest
			if c, err := cell.ParseCoord(label); err == nil {
				in.Origin = &c
			}
		}
		in.Text = formula.Strip(strings.TrimSpace(text))
		inputs = append(inputs, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read formulas: %w", err)
	}
	return inputs, nil
}

// ReadFormulasFile is ReadFormulas on a file; "-" reads stdin.
func ReadFormulasFile(path string) ([]Input, error) {
	if path == "-" {
		return ReadFormulas(os.Stdin)
	}
	// #nosec G304 -- path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inputs, err := ReadFormulas(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFormulas)
	}
	return inputs, nil
}

// splitLabel splits "label: formula". A label is a plain word so that a
// colon inside a formula is never taken for one.
func splitLabel(text string) (label, rest string, ok bool) {
	idx := strings.IndexByte(text, ':')
	if idx <= 0 {
		return "", "", false
	}
	label = strings.TrimSpace(text[:idx])
	for i := 0; i < len(label); i++ {
		b := label[i]
		if !(b == '_' || b == '-' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z') {
			return "", "", false
		}
	}
	return label, text[idx+1:], label != ""
}

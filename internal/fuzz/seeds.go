package fuzztests

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheetcalc/internal/cell"
)

const maxSeedBytes = 4 << 10

const maxFuzzInput = 1 << 12

var formulaSeeds = []string{
	"",
	"1",
	"1 + 2 * 3",
	"-(-2) - -2",
	"pow(2, 10) / max($A1, 1)",
	"sqrt(abs(-16)) + round(2.5)",
	"min($B2, $C3) * $A1",
	"((((1))))",
	"1.5.6",
	"ABS(1)",
	"abs 2",
	"(1 + 2",
	"1 + 2)",
	"abs()",
	"pow(1)",
	"$",
	"$1A",
	"$ZZ999",
	"＄Ａ１ + 1",
	"1 # 2",
	"max(1,,2)",
	"中 + 1",
	strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300),
	strings.Repeat("-", 300) + "1",
}

// fuzzResolver is a small fixed grid covering numbers, text and blanks.
var fuzzResolver = struct {
	cell.MapResolver
	bounds
}{
	MapResolver: cell.Cells(map[string]string{
		"A1": "3",
		"B1": "-0.5",
		"B2": "text",
		"C3": "1e3",
		"D4": " ",
	}),
	bounds: bounds{cols: 10, rows: 30},
}

type bounds struct{ cols, rows int }

func (b bounds) Dims() (int, int) { return b.cols, b.rows }

func addCorpusSeeds(f *testing.F) {
	for _, s := range formulaSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds formula lines of ../../testdata/*.txt, if present.
func addTestdataSeeds(f *testing.F) {
	matches, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.txt"))
	if err != nil {
		return
	}
	for _, path := range matches {
		// #nosec G304 -- path comes from repository testdata glob
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		sc := bufio.NewScanner(file)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") || len(line) > maxSeedBytes {
				continue
			}
			if _, rest, ok := strings.Cut(line, ":"); ok && !strings.ContainsAny(line[:len(line)-len(rest)], "($") {
				line = strings.TrimSpace(rest)
			}
			f.Add([]byte(strings.TrimPrefix(line, "=")))
		}
		_ = file.Close()
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

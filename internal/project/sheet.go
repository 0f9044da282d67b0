package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/grid"
)

// Entry is one cell of a fixture: what a user would type into Ref.
type Entry struct {
	Ref string
	Raw string
}

// SheetFile is a decoded fixture. Entries keep document order, since a
// formula only sees the cells entered before it.
type SheetFile struct {
	Path    string
	Rows    int // zero keeps the configured size
	Cols    int
	Entries []Entry
}

var ErrUnsupportedSheet = errors.New("unsupported sheet format")

// LoadSheet reads a .toml, .yaml or .yml fixture.
func LoadSheet(path string) (*SheetFile, error) {
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	var sf *SheetFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		sf, err = parseTOMLSheet(data)
	case ".yaml", ".yml":
		sf, err = parseYAMLSheet(data)
	default:
		return nil, fmt.Errorf("%s: %w (expected .toml, .yaml or .yml)", path, ErrUnsupportedSheet)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sf.Path = path
	return sf, nil
}

type tomlSheet struct {
	Grid  GridConfig     `toml:"grid"`
	Cells map[string]any `toml:"cells"`
}

func parseTOMLSheet(data []byte) (*SheetFile, error) {
	var doc tomlSheet
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("cells") {
		return nil, errors.New("missing [cells]")
	}

	sf := &SheetFile{Rows: doc.Grid.Rows, Cols: doc.Grid.Cols}
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != "cells" {
			continue
		}
		raw, err := scalarText(doc.Cells[key[1]])
		if err != nil {
			return nil, fmt.Errorf("cells.%s: %w", key[1], err)
		}
		sf.Entries = append(sf.Entries, Entry{Ref: key[1], Raw: raw})
	}
	return sf, nil
}

func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

func parseYAMLSheet(data []byte) (*SheetFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping at the top level")
	}

	sf := &SheetFile{}
	var cells *yaml.Node
	top := doc.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "cells":
			cells = val
		case "grid":
			var g GridConfig
			if err := val.Decode(&g); err != nil {
				return nil, fmt.Errorf("grid: %w", err)
			}
			sf.Rows, sf.Cols = g.Rows, g.Cols
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	if cells == nil || cells.Kind != yaml.MappingNode {
		return nil, errors.New("missing cells mapping")
	}

	for i := 0; i+1 < len(cells.Content); i += 2 {
		key, val := cells.Content[i], cells.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: cell %s must be a scalar", val.Line, key.Value)
		}
		sf.Entries = append(sf.Entries, Entry{Ref: key.Value, Raw: val.Value})
	}
	return sf, nil
}

// Apply enters every cell into a new sheet in document order. Formula
// failures are not errors here: they show up as the sentinel in the sheet.
// A malformed reference or a cell outside the grid is.
func (sf *SheetFile) Apply(opts grid.Options) (*grid.Sheet, error) {
	if sf.Rows > 0 {
		opts.Rows = sf.Rows
	}
	if sf.Cols > 0 {
		opts.Cols = sf.Cols
	}
	if err := grid.CheckSize(opts.Rows, opts.Cols); err != nil {
		return nil, fmt.Errorf("%s: %w", sf.Path, err)
	}
	sheet := grid.NewSheet(opts)
	for _, e := range sf.Entries {
		c, err := cell.ParseCoord(e.Ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sf.Path, err)
		}
		if err := sheet.Set(c, e.Raw); errors.Is(err, grid.ErrOutOfGrid) {
			return nil, fmt.Errorf("%s: %w", sf.Path, err)
		}
	}
	return sheet, nil
}

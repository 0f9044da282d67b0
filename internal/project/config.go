// Package project loads sheetcalc.toml settings and sheet fixture files.
package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"sheetcalc/internal/formula"
	"sheetcalc/internal/grid"
	"sheetcalc/internal/parser"
)

type Config struct {
	Eval   EvalConfig   `toml:"eval"`
	Grid   GridConfig   `toml:"grid"`
	Output OutputConfig `toml:"output"`
}

type EvalConfig struct {
	MaxDepth int    `toml:"max_depth"`
	Sentinel string `toml:"sentinel"`
}

type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

type OutputConfig struct {
	Color  string `toml:"color"`  // auto|on|off
	Format string `toml:"format"` // pretty|json|msgpack
}

// DefaultConfig is used when no sheetcalc.toml exists.
func DefaultConfig() Config {
	return Config{
		Eval:   EvalConfig{MaxDepth: parser.DefaultMaxDepth, Sentinel: formula.Sentinel},
		Grid:   GridConfig{Rows: grid.DefaultRows, Cols: grid.DefaultCols},
		Output: OutputConfig{Color: "auto", Format: "pretty"},
	}
}

// LoadConfig decodes path over the defaults. Unknown keys and out of range
// values are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("eval", "sentinel") && strings.TrimSpace(cfg.Eval.Sentinel) == "" {
		return Config{}, fmt.Errorf("%s: [eval].sentinel must not be empty", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Eval.MaxDepth <= 0 {
		return fmt.Errorf("[eval].max_depth must be positive, got %d", c.Eval.MaxDepth)
	}
	if err := grid.CheckSize(c.Grid.Rows, c.Grid.Cols); err != nil {
		return fmt.Errorf("[grid]: %w", err)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("[output].format must be pretty|json|msgpack, got %q", c.Output.Format)
	}
	return nil
}

// Load finds sheetcalc.toml from startDir upwards. Without one the defaults
// are returned and found is false.
func Load(startDir string) (cfg Config, path string, found bool, err error) {
	path, found, err = FindConfig(startDir)
	if err != nil || !found {
		return DefaultConfig(), "", false, err
	}
	cfg, err = LoadConfig(path)
	return cfg, path, true, err
}

// SheetOptions maps the configuration onto grid options.
func (c Config) SheetOptions() grid.Options {
	return grid.Options{
		Rows:     c.Grid.Rows,
		Cols:     c.Grid.Cols,
		Sentinel: c.Eval.Sentinel,
		MaxDepth: c.Eval.MaxDepth,
	}
}

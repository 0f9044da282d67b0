package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/grid"
	"sheetcalc/internal/project"
)

// settings is the configuration after applying CLI overrides.
type settings struct {
	cfg            project.Config
	configPath     string
	color          switchMode
	maxDiagnostics int
	timings        bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{}
	if configPath != "" {
		s.cfg, err = project.LoadConfig(configPath)
		s.configPath = configPath
	} else {
		s.cfg, s.configPath, _, err = project.Load(".")
	}
	if err != nil {
		return nil, err
	}

	colorValue := s.cfg.Output.Color
	if flags.Changed("color") {
		if colorValue, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if s.color, err = parseSwitch("color", colorValue); err != nil {
		return nil, err
	}

	maxDepth, err := flags.GetInt("max-depth")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if maxDepth > 0 {
		s.cfg.Eval.MaxDepth = maxDepth
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

// useColor decides colouring for output written to f.
func (s *settings) useColor(f *os.File) bool {
	return s.color.enabledFor(f)
}

// outputFormat is the --format flag when given, else the configured one.
func (s *settings) outputFormat(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Lookup("format") == nil || !cmd.Flags().Changed("format") {
		return s.cfg.Output.Format, nil
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	return format, nil
}

// sheet loads the --sheet fixture, or returns an empty grid of the
// configured size.
func (s *settings) sheet(cmd *cobra.Command) (*grid.Sheet, error) {
	opts := s.cfg.SheetOptions()
	if cmd.Flags().Lookup("sheet") == nil {
		return grid.NewSheet(opts), nil
	}
	path, err := cmd.Flags().GetString("sheet")
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet flag: %w", err)
	}
	if path == "" {
		return grid.NewSheet(opts), nil
	}
	sf, err := project.LoadSheet(path)
	if err != nil {
		return nil, err
	}
	return sf.Apply(opts)
}

// resolver is a frozen view of the --sheet grid.
func (s *settings) resolver(cmd *cobra.Command) (cell.Resolver, error) {
	sheet, err := s.sheet(cmd)
	if err != nil {
		return nil, err
	}
	return sheet.Snapshot(), nil
}

func addSheetFlag(cmd *cobra.Command) {
	cmd.Flags().String("sheet", "", "sheet fixture (.toml|.yaml) that references resolve against")
}

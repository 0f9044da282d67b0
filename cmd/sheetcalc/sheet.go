package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/grid"
	"sheetcalc/internal/project"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet [flags] file",
	Short: "Load a sheet fixture and print the grid",
	Long: `Sheet enters every cell of a .toml or .yaml fixture in document order,
the way a user would type them, and prints what each cell displays`,
	Args: cobra.ExactArgs(1),
	RunE: runSheet,
}

func init() {
	sheetCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	sheetCmd.Flags().Bool("explain", false, "list the failure of every incorrect formula")
}

func runSheet(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}

	sf, err := project.LoadSheet(args[0])
	if err != nil {
		return err
	}
	sheet, err := sf.Apply(s.cfg.SheetOptions())
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatSheet(cmd.OutOrStdout(), sheet.Table(), s.cfg.Eval.Sentinel, s.useColor(os.Stdout)); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatSheetJSON(cmd.OutOrStdout(), sheetCells(sf, sheet)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if explain {
		for _, e := range sf.Entries {
			c := cell.MustParseCoord(e.Ref)
			if err := sheet.Err(c); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", c, err)
			}
		}
	}
	return nil
}

// sheetCells lists cells in fixture order; a cell entered twice appears once.
func sheetCells(sf *project.SheetFile, sheet *grid.Sheet) []diagfmt.SheetCellJSON {
	seen := make(map[cell.Coord]bool, len(sf.Entries))
	out := make([]diagfmt.SheetCellJSON, 0, len(sf.Entries))
	for _, e := range sf.Entries {
		c := cell.MustParseCoord(e.Ref)
		if seen[c] {
			continue
		}
		seen[c] = true
		raw, display, ok := sheet.Get(c)
		if !ok {
			continue
		}
		rec := diagfmt.SheetCellJSON{Ref: c.String(), Raw: raw, Display: display}
		if err := sheet.Err(c); err != nil {
			rec.Error = err.Error()
		}
		out = append(out, rec)
	}
	return out
}

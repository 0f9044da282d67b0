package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] formula...",
	Short: "Report diagnostics for formulas",
	Long:  `Diag checks formulas and prints every diagnostic; it exits non-zero when any formula is incorrect`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	addSheetFlag(diagCmd)
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().StringSlice("file", nil, "read formulas from a file as well (one per line)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	files, err := cmd.Flags().GetStringSlice("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}

	inputs, err := argInputs(args)
	if err != nil {
		return err
	}
	for _, path := range files {
		more, err := driver.ReadFormulasFile(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, more...)
	}

	resolver, err := s.resolver(cmd)
	if err != nil {
		return err
	}

	result := driver.Diagnose(cmd.Context(), inputs, resolver, driver.DiagnoseOptions{
		MaxDepth:       s.cfg.Eval.MaxDepth,
		MaxDiagnostics: s.maxDiagnostics,
		EnableTimings:  s.timings,
	})

	switch format {
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stdout),
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              s.maxDiagnostics,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		})
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return errSilentExit
	}
	return nil
}

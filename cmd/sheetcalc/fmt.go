package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/driver"
	"sheetcalc/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:     "fmt [flags] formula...",
	Short:   "Print formulas in canonical form",
	Example: `  sheetcalc fmt "=((1+2))*$a1"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFmt,
}

func init() {
	addSheetFlag(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	inputs, err := argInputs(args)
	if err != nil {
		return err
	}
	resolver, err := s.resolver(cmd)
	if err != nil {
		return err
	}

	failed := false
	out := cmd.OutOrStdout()
	for _, in := range inputs {
		result := driver.Parse(in, resolver, s.cfg.Eval.MaxDepth, s.maxDiagnostics)
		if !result.OK() {
			failed = true
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     s.useColor(os.Stderr),
				ShowFixes: true,
			})
			continue
		}
		fmt.Fprintf(out, "=%s\n", format.Formula(result.Tree))
	}
	if failed {
		return errSilentExit
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/driver"
	"sheetcalc/internal/formula"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] formula",
	Short: "Show the expression tree of a formula",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	addSheetFlag(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	result := driver.Parse(inputs[0], resolver, s.cfg.Eval.MaxDepth, s.maxDiagnostics)
	if !result.OK() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stderr),
			ShowNotes: true,
			ShowFixes: true,
		})
		return errSilentExit
	}

	out := cmd.OutOrStdout()
	if err := diagfmt.FormatTree(out, result.Tree, result.FileSet); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "= %s\n", formula.FormatValue(result.Value))
	return err
}

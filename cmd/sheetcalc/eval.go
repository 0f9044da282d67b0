package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/observ"
	"sheetcalc/internal/source"
	"sheetcalc/internal/trace"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] formula...",
	Short: "Evaluate formulas",
	Long: `Evaluate prints the value of each formula, or the failure sentinel.
References resolve against --sheet when given, otherwise against an empty grid.`,
	Example: `  sheetcalc eval "=1 + 2 * 3"
  sheetcalc eval --sheet budget.toml "C3: =$A3 * $B3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	addSheetFlag(evalCmd)
	evalCmd.Flags().Bool("explain", false, "print diagnostics for failing formulas")
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}

	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
	}

	inputs, err := argInputs(args)
	if err != nil {
		return err
	}

	var resolver cell.Resolver
	if err := timer.Measure("load", func() (err error) {
		resolver, err = s.resolver(cmd)
		return err
	}); err != nil {
		return err
	}

	span, ctx := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "eval")
	defer span.End("")

	fs := source.NewFileSet()
	bag := diag.NewBag(s.maxDiagnostics)
	failed := 0
	idx := timer.Begin("evaluate")
	for _, in := range inputs {
		cellSpan := trace.StartCell(ctx, in.Label, in.Text)
		file := fs.Get(fs.AddVirtual(in.Name(), []byte(in.Text)))
		v, evalErr := formula.EvaluateFile(file, resolver, formula.Options{
			Origin:   in.Origin,
			MaxDepth: s.cfg.Eval.MaxDepth,
			Reporter: diag.BagReporter{Bag: bag},
		})
		trace.EndCell(cellSpan, formula.FormatValue(v), evalErr)
		display := formula.FormatValue(v)
		if evalErr != nil {
			failed++
			display = s.cfg.Eval.Sentinel
		}

		if len(inputs) == 1 {
			fmt.Fprintln(cmd.OutOrStdout(), display)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", in.Label, display)
		}
	}
	timer.End(idx, "")

	if explain && bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stderr),
			ShowNotes: true,
			ShowFixes: true,
		})
	}
	printTimings(os.Stderr, timer)

	if failed > 0 {
		return errSilentExit
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/driver"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/observ"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] file",
	Short: "Evaluate a file of formulas in parallel",
	Long: `Batch evaluates every formula line of file against a frozen snapshot of
--sheet. Lines look like "=1+2" or "B2: =$A1*2"; blank lines and lines
starting with '#' are skipped. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	addSheetFlag(batchCmd)
	batchCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().String("ui", "off", "show progress UI (auto|on|off)")
	batchCmd.Flags().Bool("explain", false, "print diagnostics of failing formulas to stderr")
	batchCmd.Flags().Bool("strict", false, "exit non-zero when any formula fails")
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	formatName, err := s.outputFormat(cmd)
	if err != nil {
		return err
	}
	format, ok := diagfmt.ParseFormat(formatName)
	if !ok {
		return fmt.Errorf("unknown format: %s", formatName)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	ui, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}

	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
	}

	var inputs []driver.Input
	var resolver cell.Resolver
	if err := timer.Measure("load", func() (err error) {
		if inputs, err = driver.ReadFormulasFile(args[0]); err != nil {
			return err
		}
		resolver, err = s.resolver(cmd)
		return err
	}); err != nil {
		return err
	}

	req := driver.BatchRequest{
		Inputs:         inputs,
		Resolver:       resolver,
		Jobs:           jobs,
		MaxDepth:       s.cfg.Eval.MaxDepth,
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	}

	var res *driver.BatchResult
	idx := timer.Begin("batch")
	// the progress view draws on stderr while the table goes to stdout
	if ui.enabledFor(os.Stderr, os.Stdout) {
		res, err = runBatchWithUI(cmd.Context(), "batch "+args[0], req)
	} else {
		res, err = driver.EvaluateBatch(cmd.Context(), req)
	}
	timer.End(idx, "")
	if err != nil {
		return err
	}

	out := diagfmt.ResultsOutput{
		RunID:   res.RunID,
		Results: make([]diagfmt.ResultRecord, len(res.Results)),
		Failed:  res.Failed,
	}
	for i, r := range res.Results {
		out.Results[i] = resultRecord(i, r, s.cfg.Eval.Sentinel)
	}

	err = timer.Measure("render", func() error {
		return diagfmt.FormatResults(cmd.OutOrStdout(), out, format, s.useColor(os.Stdout))
	})
	if err != nil {
		return err
	}

	if explain && res.Failed > 0 {
		diagfmt.Pretty(os.Stderr, res.Diagnostics(s.maxDiagnostics), res.FileSet, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stderr),
			ShowNotes: true,
		})
	}
	printTimings(os.Stderr, timer)

	if strict && res.Failed > 0 {
		return errSilentExit
	}
	return nil
}

func resultRecord(i int, r driver.Result, sentinel string) diagfmt.ResultRecord {
	rec := diagfmt.ResultRecord{
		Index:   i,
		Label:   r.Input.Label,
		Formula: r.Input.Text,
	}
	if r.Err != nil {
		rec.Display = sentinel
		rec.Kind = formula.KindOf(r.Err).String()
		rec.Error = r.Err.Error()
		var ferr *formula.Error
		if errors.As(r.Err, &ferr) {
			rec.Code = ferr.Code.ID()
		}
		return rec
	}
	rec.Value = diagfmt.FiniteValue(r.Value)
	rec.Display = formula.FormatValue(r.Value)
	return rec
}

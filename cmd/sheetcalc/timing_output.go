package main

import (
	"fmt"
	"io"

	"sheetcalc/internal/observ"
)

// printTimings writes one line per phase when timings are enabled.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	for _, phase := range report.Phases {
		line := fmt.Sprintf("%s %.1f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			line += " (" + phase.Note + ")"
		}
		fmt.Fprintln(out, line)
	}
	if len(report.Phases) > 1 {
		fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
	}
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sheetcalc/internal/driver"
	"sheetcalc/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs the batch while a progress view follows its events.
// The view goes to stderr so that results on stdout stay machine readable.
func runBatchWithUI(ctx context.Context, title string, req driver.BatchRequest) (*driver.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		req.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.EvaluateBatch(ctx, req)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	labels := make([]string, len(req.Inputs))
	for i, in := range req.Inputs {
		labels[i] = in.Label
	}
	model := ui.NewProgressModel(title, labels, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early (ctrl+c); stop the run and keep its sends from blocking
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

package driver

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/observ"
	"sheetcalc/internal/source"
	"sheetcalc/internal/trace"
)

// BatchRequest describes a parallel evaluation run.
type BatchRequest struct {
	Inputs []Input
	// Resolver must be safe for concurrent reads; grid.Snapshot is.
	Resolver       cell.Resolver
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDepth       int
	MaxDiagnostics int // per formula
	Progress       ProgressSink
	Timings        bool
}

// Result is the outcome of one formula.
type Result struct {
	Input   Input
	File    *source.File
	Value   float64
	Err     error
	Bag     *diag.Bag
	Elapsed time.Duration
}

// OK reports whether the formula produced a value.
func (r Result) OK() bool {
	return r.Err == nil
}

type BatchResult struct {
	RunID   string
	FileSet *source.FileSet
	Results []Result // same order as the request inputs
	Failed  int
	Timing  *observ.Report
}

// Diagnostics collects every per-formula diagnostic in input order, keeping
// at most maxDiagnostics (all of them when <= 0). Timing data is appended
// when the run was timed.
func (b *BatchResult) Diagnostics(maxDiagnostics int) *diag.Bag {
	total := 0
	for _, r := range b.Results {
		total += r.Bag.Len()
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = total
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, r := range b.Results {
		for _, d := range r.Bag.Items() {
			bag.Add(d)
		}
	}
	if b.Timing != nil {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "batch",
			Path:    b.RunID,
			TotalMS: b.Timing.TotalMS,
			Phases:  b.Timing.Phases,
		})
	}
	return bag
}

// EvaluateBatch evaluates every input against the same resolver in parallel.
// Formula failures are reported per result; the returned error is only
// set when ctx is cancelled.
func EvaluateBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	var timer *observ.Timer
	if req.Timings {
		timer = observ.NewTimer()
	}

	runID := uuid.NewString()
	span, ctx := trace.StartSpan(trace.WithRun(ctx, runID), trace.ScopeDriver, "batch")
	defer span.End("")

	out := &BatchResult{
		RunID:   runID,
		FileSet: source.NewFileSet(),
		Results: make([]Result, len(req.Inputs)),
	}
	if len(req.Inputs) == 0 {
		return out, nil
	}

	// FileSet не потокобезопасен: загружаем все формулы заранее
	loadIdx := timer.Begin("load")
	loadSpan, _ := trace.StartSpan(ctx, trace.ScopePass, "load")
	for i, in := range req.Inputs {
		id := out.FileSet.AddVirtual(in.Name(), []byte(in.Text))
		out.Results[i] = Result{Input: in, File: out.FileSet.Get(id)}
		emit(req.Progress, Event{Label: in.Label, Stage: StageLoad, Status: StatusQueued})
	}
	loadSpan.End("")
	timer.End(loadIdx, "")

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	resolver := req.Resolver
	if resolver == nil {
		resolver = cell.None
	}

	evalIdx := timer.Begin("evaluate")
	evalSpan, evalCtx := trace.StartSpan(ctx, trace.ScopePass, "evaluate")
	g, gctx := errgroup.WithContext(evalCtx)
	g.SetLimit(min(jobs, len(req.Inputs)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	for i := range out.Results {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			evaluateOne(gctx, &out.Results[i], resolver, req)
			return nil
		})
	}
	err := g.Wait()
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		evalSpan.Note("cancelled")
		span.Note("cancelled")
	}
	evalSpan.End("")
	timer.End(evalIdx, "")
	if err != nil {
		return nil, err
	}

	for _, r := range out.Results {
		if !r.OK() {
			out.Failed++
		}
	}
	if timer != nil {
		report := timer.Report()
		out.Timing = &report
	}
	emit(req.Progress, Event{Stage: StageEvaluate, Status: StatusDone})
	return out, nil
}

func evaluateOne(ctx context.Context, res *Result, r cell.Resolver, req BatchRequest) {
	label := res.Input.Label
	span := trace.StartCell(ctx, label, res.Input.Text)
	emit(req.Progress, Event{Label: label, Stage: StageEvaluate, Status: StatusWorking})

	started := time.Now()
	res.Bag = diag.NewBag(max(req.MaxDiagnostics, 1))
	res.Value, res.Err = formula.EvaluateFile(res.File, r, formula.Options{
		Origin:   res.Input.Origin,
		MaxDepth: req.MaxDepth,
		Reporter: diag.BagReporter{Bag: res.Bag},
	})
	res.Elapsed = time.Since(started)

	status := StatusDone
	if res.Err != nil {
		status = StatusError
	}
	trace.EndCell(span, formula.FormatValue(res.Value), res.Err)
	emit(req.Progress, Event{Label: label, Stage: StageEvaluate, Status: status, Err: res.Err, Elapsed: res.Elapsed})
}

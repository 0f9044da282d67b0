package driver

import (
	"context"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/observ"
	"sheetcalc/internal/source"
	"sheetcalc/internal/trace"
)

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	MaxDepth       int
	MaxDiagnostics int
	EnableTimings  bool
}

type DiagnoseResult struct {
	FileSet *source.FileSet
	Trees   []ast.Expr // nil entries for formulas that failed
	Bag     *diag.Bag
}

// Diagnose checks every input against r, collecting all diagnostics in one
// bag over a shared file set. Unlike EvaluateBatch it runs sequentially and
// keeps the trees.
func Diagnose(ctx context.Context, inputs []Input, r cell.Resolver, opts DiagnoseOptions) *DiagnoseResult {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "diagnose")
	defer span.End("")

	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = len(inputs) + 1
	}
	res := &DiagnoseResult{
		FileSet: source.NewFileSet(),
		Trees:   make([]ast.Expr, len(inputs)),
		Bag:     diag.NewBag(maxDiagnostics),
	}

	idx := timer.Begin("check")
	checkSpan, checkCtx := trace.StartSpan(ctx, trace.ScopePass, "check")
	for i, in := range inputs {
		cellSpan := trace.StartCell(checkCtx, in.Label, in.Text)
		file := res.FileSet.Get(res.FileSet.AddVirtual(in.Name(), []byte(in.Text)))
		bag := diag.NewBag(4)
		var value float64
		res.Trees[i], value = formula.CheckFile(file, r, formula.Options{
			Origin:   in.Origin,
			MaxDepth: opts.MaxDepth,
		}, bag)
		if d, ok := firstError(bag); ok && res.Trees[i] == nil {
			cellSpan.Fail(d.Code, d.Message)
		}
		cellSpan.End(formula.FormatValue(value))
		for _, d := range bag.Items() {
			res.Bag.Add(d)
		}
	}
	checkSpan.End("")
	timer.End(idx, "")

	res.Bag.Sort()
	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "diagnose",
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return res
}

func firstError(bag *diag.Bag) (diag.Diagnostic, bool) {
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

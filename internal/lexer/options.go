package lexer

import (
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
)

type Options struct {
	// Resolver supplies displayed cell values for "$A1" references.
	// nil resolves nothing, so every reference fails.
	Resolver cell.Resolver
	// Reporter может быть nil, тогда ошибку видно только через Err().
	Reporter diag.Reporter
	// Origin is the cell the formula is being computed for, if known.
	// Referencing it is reported as a circular reference.
	Origin *cell.Coord
}

// fail records the first error, reports it and turns the lexer invalid.
// Later failures are ignored: the flag is sticky.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string, fixes ...diag.Fix) {
	if lx.err != nil {
		return
	}
	d := diag.NewError(code, sp, msg)
	d.Fixes = fixes
	lx.err = &d
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}

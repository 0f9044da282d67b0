// Package trace records what sheetcalc is doing while it evaluates formulas.
//
// Driver spans mark the CLI command and the batch run; cell spans mark one
// formula each and end with its display value or the diagnostic code it
// failed with. Events go to a stream (stderr or a file, as text or NDJSON),
// to an in-memory ring, or both.
//
//	sheetcalc batch --trace=- --trace-level=detail formulas.txt
//
// Levels: off; error (ring only, dumped when a formula failed); phase
// (driver and pass spans); detail (plus one span per formula).
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.StartCell(ctx, "B2", "$A1*2")
//	trace.EndCell(span, display, err)
package trace

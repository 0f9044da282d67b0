package trace

import (
	"context"
	"errors"

	"sheetcalc/internal/diag"
)

type ctxKey struct{}

type spanCtxKey struct{}

// spanContext is what child spans inherit.
type spanContext struct {
	spanID uint64
	runID  string
}

// FromContext extracts the Tracer from ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

func current(ctx context.Context) spanContext {
	if ctx == nil {
		return spanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(spanContext)
	return sc
}

// WithRun tags every span started under ctx with a batch run id.
func WithRun(ctx context.Context, runID string) context.Context {
	sc := current(ctx)
	sc.runID = runID
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// StartSpan begins a span under the span stored in ctx and returns a context
// carrying the new one.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	parent := current(ctx)
	span := begin(FromContext(ctx), Event{
		Scope:    scope,
		Name:     name,
		ParentID: parent.spanID,
		RunID:    parent.runID,
	})
	if span == nil {
		return nil, ctx
	}
	return span, context.WithValue(ctx, spanCtxKey{}, spanContext{spanID: span.ID(), runID: parent.runID})
}

// StartCell begins the span of one formula. label names the cell; text is
// the formula without its '='.
func StartCell(ctx context.Context, label, text string) *Span {
	parent := current(ctx)
	return begin(FromContext(ctx), Event{
		Scope:    ScopeCell,
		Name:     label,
		ParentID: parent.spanID,
		RunID:    parent.runID,
		Cell:     label,
		Formula:  text,
	})
}

// coded is satisfied by formula errors.
type coded interface {
	DiagCode() diag.Code
}

// EndCell closes a cell span with the outcome of evaluating it: display on
// success, the diagnostic code carried by err otherwise.
func EndCell(s *Span, display string, err error) {
	if err != nil {
		code := diag.UnknownCode
		var c coded
		if errors.As(err, &c) {
			code = c.DiagCode()
		}
		s.Fail(code, err.Error())
	}
	s.End(display)
}

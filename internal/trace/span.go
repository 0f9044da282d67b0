package trace

import (
	"sync/atomic"
	"time"

	"sheetcalc/internal/diag"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open operation. A nil or disabled span accepts every call and
// records nothing.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	code    diag.Code
	value   string
	detail  string
}

// Begin starts a span named name under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, Event{Scope: scope, Name: name, ParentID: parent})
}

func begin(t Tracer, ev Event) *Span {
	if t == nil || !t.Enabled() {
		return nil
	}
	now := time.Now()
	ev.Time = now
	ev.Seq = nextSeq()
	ev.Kind = KindSpanBegin
	ev.SpanID = spanCounter.Add(1)
	t.Emit(&ev)
	return &Span{tracer: t, begin: ev, started: now}
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Fail marks the span's formula as failed with code.
func (s *Span) Fail(code diag.Code, msg string) *Span {
	if s != nil {
		s.code = code
		s.detail = msg
	}
	return s
}

// Note attaches a free-form detail to the end event.
func (s *Span) Note(detail string) *Span {
	if s != nil {
		s.detail = detail
	}
	return s
}

// End closes the span. value is the display of a successful formula and
// is ignored once Fail was called.
func (s *Span) End(value string) time.Duration {
	if s == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	ev := s.begin
	ev.Time = time.Now()
	ev.Seq = nextSeq()
	ev.Kind = KindSpanEnd
	ev.Code = s.code
	ev.Detail = s.detail
	ev.Elapsed = elapsed
	if s.code == diag.UnknownCode {
		ev.Value = value
	}
	s.tracer.Emit(&ev)
	return elapsed
}

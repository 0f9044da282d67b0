package trace

import (
	"time"

	"sheetcalc/internal/diag"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command, batch run
	ScopePass                    // load, check, render
	ScopeCell                    // one formula
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Event is one trace record. Cell events carry the formula they evaluate
// and, on end, either its display value or the code it failed with.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // "batch", "eval", "diagnose" or a cell label
	RunID    string // batch run the span belongs to, if any

	Cell    string    // label or coordinate of the formula
	Formula string    // formula text without the leading '='
	Value   string    // display value of a successful formula
	Code    diag.Code // failure code; UnknownCode on success
	Detail  string    // failure message or a driver note
	Elapsed time.Duration
}

// Failed reports whether the event ends a formula that did not evaluate.
func (ev *Event) Failed() bool {
	return ev.Kind == KindSpanEnd && ev.Code != diag.UnknownCode
}

package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sheetcalc/internal/diag"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output file extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// resolve turns FormatAuto into a concrete format for path.
func (f Format) resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time      string  `json:"time"`
	Seq       uint64  `json:"seq"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope"`
	SpanID    uint64  `json:"span_id"`
	ParentID  uint64  `json:"parent_id,omitempty"`
	Name      string  `json:"name"`
	RunID     string  `json:"run_id,omitempty"`
	Cell      string  `json:"cell,omitempty"`
	Formula   string  `json:"formula,omitempty"`
	Value     string  `json:"value,omitempty"`
	Code      string  `json:"code,omitempty"`
	ErrKind   string  `json:"error_kind,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		RunID:    ev.RunID,
		Cell:     ev.Cell,
		Formula:  ev.Formula,
		Value:    ev.Value,
		Detail:   ev.Detail,
	}
	if ev.Code != diag.UnknownCode {
		j.Code = ev.Code.ID()
		j.ErrKind = ev.Code.Kind().String()
	}
	if ev.Kind == KindSpanEnd {
		j.ElapsedMS = float64(ev.Elapsed) / float64(time.Millisecond)
	}

	data, err := json.Marshal(j)
	if err != nil {
		return []byte(fmt.Sprintf("{\"name\":%q,\"error\":%q}\n", ev.Name, err.Error()))
	}
	return append(data, '\n')
}

// formatText: [time] →/← scope name =formula | = value | CODE kind: detail (elapsed)
func formatText(ev *Event) []byte {
	var sb strings.Builder

	sb.WriteString(ev.Time.Format("[15:04:05.000000] "))
	if ev.ParentID > 0 {
		sb.WriteString("  ")
	}
	if ev.Kind == KindSpanBegin {
		sb.WriteString("\u2192 ") // →
	} else {
		sb.WriteString("\u2190 ") // ←
	}
	sb.WriteString(ev.Scope.String())
	sb.WriteByte(' ')
	sb.WriteString(ev.Name)
	if ev.RunID != "" && ev.Scope == ScopeDriver {
		sb.WriteString(" run=")
		sb.WriteString(ev.RunID)
	}

	switch {
	case ev.Kind == KindSpanBegin && ev.Formula != "":
		sb.WriteString(" =")
		sb.WriteString(ev.Formula)
	case ev.Code != diag.UnknownCode:
		sb.WriteByte(' ')
		sb.WriteString(ev.Code.ID())
		sb.WriteByte(' ')
		sb.WriteString(ev.Code.Kind().String())
		if ev.Detail != "" {
			sb.WriteString(": ")
			sb.WriteString(ev.Detail)
		}
	case ev.Value != "":
		sb.WriteString(" = ")
		sb.WriteString(ev.Value)
	case ev.Detail != "":
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}

	if ev.Kind == KindSpanEnd {
		sb.WriteString(" [")
		sb.WriteString(strconv.FormatFloat(float64(ev.Elapsed)/float64(time.Millisecond), 'f', 3, 64))
		sb.WriteString("ms]")
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

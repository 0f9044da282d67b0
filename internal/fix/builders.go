// Package fix builds and applies the text edits that diagnostics suggest.
package fix

import (
	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
)

// InsertText creates a fix that inserts text before at.Start.
func InsertText(title string, at source.Span, text string) diag.Fix {
	at.End = at.Start
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: at, NewText: text}},
	}
}

// ReplaceSpan replaces the text covered by span.
func ReplaceSpan(title string, span source.Span, text string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: text}},
	}
}

// DeleteSpan removes the text covered by span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return ReplaceSpan(title, span, "")
}

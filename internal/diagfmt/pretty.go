package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <cell>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку формулы с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		path := "?"
		var start source.LineCol
		if f != nil {
			path = f.Path
			start, _ = fs.Resolve(d.Primary)
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			p.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.String())),
			p.code.Sprint(d.Code.ID()),
			d.Message)

		if f != nil {
			writeSnippet(w, p, f, fs, d.Primary, p.caret)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				if fs.Get(n.Span.File) == nil {
					fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("= note:"), n.Msg)
					continue
				}
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s (%d:%d)\n", p.note.Sprint("= note:"), n.Msg, pos.Line, pos.Col)
			}
		}
		if opts.ShowFixes {
			for _, fx := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("= help:"), fx.Title)
			}
		}
	}
}

// writeSnippet печатает строку формулы и подчёркивание под span.
// Отступ и длина подчёркивания считаются в ячейках терминала, а не в байтах.
func writeSnippet(w io.Writer, p palette, f *source.File, fs *source.FileSet, sp source.Span, caret *color.Color) {
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))

	col := clamp(int(start.Col)-1, 0, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = clamp(int(end.Col)-1, col, len(line))
	}

	indent := runewidth.StringWidth(line[:col])
	width := runewidth.StringWidth(line[col:endCol])
	marks := "^"
	if width > 1 {
		marks += strings.Repeat("~", width-1)
	}

	fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
	fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)
	fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", indent), caret.Sprint(marks))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package formula is the entry point for computing a cell formula: it wires
// the lexer, parser and evaluator together and turns the first diagnostic
// into a single *Error.
package formula

import (
	"strconv"
	"strings"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/eval"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/parser"
	"sheetcalc/internal/source"
)

type Options struct {
	// Origin is the cell being computed; a reference to it is circular.
	Origin *cell.Coord
	// MaxDepth limits nesting; zero means parser.DefaultMaxDepth.
	MaxDepth int
	// Reporter also receives every diagnostic, if set.
	Reporter diag.Reporter
	// Name labels the text in diagnostics. Defaults to the origin cell.
	Name string
}

func (o Options) name() string {
	switch {
	case o.Name != "":
		return o.Name
	case o.Origin != nil:
		return o.Origin.String()
	default:
		return "formula"
	}
}

// Evaluate computes text, which must not start with '='. Cell references are
// read through r. Any failure is an *Error matching ErrIncorrectFormula.
func Evaluate(text string, r cell.Resolver, opts Options) (float64, error) {
	fs := source.NewFileSet()
	return EvaluateFile(fs.Get(fs.AddVirtual(opts.name(), []byte(text))), r, opts)
}

// EvaluateFile is Evaluate for a text already held in a FileSet, so that
// diagnostics of many formulas share one set of spans.
func EvaluateFile(file *source.File, r cell.Resolver, opts Options) (float64, error) {
	first := &diag.FirstErrorReporter{Next: opts.Reporter}
	expr, ok := parse(file, r, opts, first)
	if !ok {
		if d, found := first.First(); found {
			return 0, fromDiagnostic(d)
		}
		return 0, &Error{Kind: diag.KindSyntax, Code: diag.SynUnexpectedToken, Msg: "malformed formula"}
	}
	return eval.Eval(expr), nil
}

// Checked is the full outcome of Check.
type Checked struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    ast.Expr // nil when Bag has errors
	Bag     *diag.Bag
	Value   float64 // valid only when Tree != nil
}

// Err is the failure as Evaluate would report it, or nil.
func (c Checked) Err() error {
	if c.Tree != nil {
		return nil
	}
	for _, d := range c.Bag.Items() {
		if d.Severity >= diag.SevError {
			return fromDiagnostic(d)
		}
	}
	return &Error{Kind: diag.KindSyntax, Code: diag.SynUnexpectedToken, Msg: "malformed formula"}
}

// Check parses and evaluates text, keeping every diagnostic and the tree for
// tooling. maxDiagnostics caps the bag; zero means a small default.
func Check(text string, r cell.Resolver, opts Options, maxDiagnostics int) Checked {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 16
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(opts.name(), []byte(text)))
	bag := diag.NewBag(maxDiagnostics)

	out := Checked{FileSet: fs, File: file, Bag: bag}
	out.Tree, out.Value = CheckFile(file, r, opts, bag)
	return out
}

// CheckFile parses and evaluates file, adding diagnostics to bag. The tree is
// nil when parsing failed.
func CheckFile(file *source.File, r cell.Resolver, opts Options, bag *diag.Bag) (ast.Expr, float64) {
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		rep = teeReporter{rep, opts.Reporter}
	}
	expr, ok := parse(file, r, opts, rep)
	if !ok {
		return nil, 0
	}
	return expr, eval.Eval(expr)
}

func parse(file *source.File, r cell.Resolver, opts Options, rep diag.Reporter) (ast.Expr, bool) {
	lx := lexer.New(file, lexer.Options{
		Resolver: r,
		Reporter: rep,
		Origin:   opts.Origin,
	})
	return parser.Parse(lx, parser.Options{MaxDepth: opts.MaxDepth, Reporter: rep})
}

type teeReporter [2]diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	for _, r := range t {
		r.Report(code, sev, primary, msg, notes, fixes)
	}
}

// IsFormula reports whether raw cell text is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, "=")
}

// Strip removes the leading '=' of raw cell text.
func Strip(raw string) string {
	return strings.TrimPrefix(raw, "=")
}

// FormatValue renders a computed value the way a cell displays it. Plain
// decimal notation is used so that another formula can read it back.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Display renders an Evaluate result for a cell.
func Display(v float64, err error) string {
	if err != nil {
		return Sentinel
	}
	return FormatValue(v)
}

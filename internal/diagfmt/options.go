package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	Max              int  // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
}

// Format selects an output encoding for tokens, trees and results.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatPretty, FormatJSON, FormatMsgpack:
		return f, true
	default:
		return "", false
	}
}

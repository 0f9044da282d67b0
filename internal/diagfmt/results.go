package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"
)

// ResultRecord is one evaluated formula of a batch.
type ResultRecord struct {
	Index   int      `json:"index" msgpack:"index"`
	Label   string   `json:"label" msgpack:"label"`
	Formula string   `json:"formula" msgpack:"formula"`
	Value   *float64 `json:"value,omitempty" msgpack:"value,omitempty"` // nil on failure or for non-finite values
	Display string   `json:"display" msgpack:"display"`
	Code    string   `json:"code,omitempty" msgpack:"code,omitempty"`
	Kind    string   `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Error   string   `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ResultsOutput is the root of json and msgpack result documents.
type ResultsOutput struct {
	RunID   string         `json:"run_id" msgpack:"run_id"`
	Results []ResultRecord `json:"results" msgpack:"results"`
	Failed  int            `json:"failed" msgpack:"failed"`
}

// FiniteValue returns a pointer suitable for ResultRecord.Value.
// JSON cannot carry NaN or ±Inf, so those are left to Display.
func FiniteValue(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// maxFormulaWidth bounds the formula column of the pretty table.
const maxFormulaWidth = 40

// FormatResults writes batch results in the requested format.
func FormatResults(w io.Writer, out ResultsOutput, format Format, useColor bool) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(out)
	case FormatPretty, "":
		return formatResultsPretty(w, out, useColor)
	default:
		return fmt.Errorf("unknown result format %q", format)
	}
}

func formatResultsPretty(w io.Writer, out ResultsOutput, useColor bool) error {
	failColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)
	if useColor {
		failColor.EnableColor()
		okColor.EnableColor()
	} else {
		failColor.DisableColor()
		okColor.DisableColor()
	}

	labelWidth, formulaWidth := 1, 1
	for _, r := range out.Results {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Label))
		formulaWidth = max(formulaWidth, runewidth.StringWidth(r.Formula))
	}
	formulaWidth = min(formulaWidth, maxFormulaWidth)

	for _, r := range out.Results {
		label := runewidth.FillRight(r.Label, labelWidth)
		text := runewidth.FillRight(runewidth.Truncate(r.Formula, formulaWidth, "…"), formulaWidth)
		value := okColor.Sprint(r.Display)
		if r.Error != "" {
			value = failColor.Sprint(r.Display) + "  " + r.Code + " " + r.Error
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n", label, text, value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d formulas, %d failed (run %s)\n", len(out.Results), out.Failed, out.RunID)
	return err
}

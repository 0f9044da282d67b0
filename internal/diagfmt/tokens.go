package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Value *float64    `json:"value,omitempty"`
	Func  string      `json:"func,omitempty"`
	Ref   string      `json:"ref,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-9s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		switch {
		case tok.IsRef():
			fmt.Fprintf(w, " (%s = %s)", tok.Ref, formatNumber(tok.Value))
		case tok.Kind == token.Number:
			fmt.Fprintf(w, " (%s)", formatNumber(tok.Value))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))

	for _, tok := range tokens {
		tokenOut := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		switch tok.Kind {
		case token.Number:
			v := tok.Value
			tokenOut.Value = &v
			if tok.Ref != nil {
				tokenOut.Ref = tok.Ref.String()
			}
		case token.Function:
			tokenOut.Func = tok.Func.String()
		}
		output = append(output, tokenOut)

		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

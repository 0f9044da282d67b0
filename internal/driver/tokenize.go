package driver

import (
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize runs the tokenizer alone over in, resolving references through r.
// Tokens end with EOF, or with Invalid when the text is malformed.
func Tokenize(in Input, r cell.Resolver, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(in.Name(), []byte(in.Text)))
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{
		Resolver: r,
		Reporter: diag.BagReporter{Bag: bag},
		Origin:   in.Origin,
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

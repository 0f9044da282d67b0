package driver

import (
	"sheetcalc/internal/ast"
	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    ast.Expr
	Value   float64
	Bag     *diag.Bag
}

// OK reports whether the formula produced a value.
func (r *ParseResult) OK() bool {
	return r.Tree != nil
}

// Parse builds the tree of in and evaluates it.
func Parse(in Input, r cell.Resolver, maxDepth, maxDiagnostics int) *ParseResult {
	checked := formula.Check(in.Text, r, formula.Options{
		Origin:   in.Origin,
		MaxDepth: maxDepth,
		Name:     in.Name(),
	}, maxDiagnostics)

	return &ParseResult{
		FileSet: checked.FileSet,
		File:    checked.File,
		Tree:    checked.Tree,
		Value:   checked.Value,
		Bag:     checked.Bag,
	}
}

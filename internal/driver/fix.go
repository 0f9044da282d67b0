package driver

import (
	"sheetcalc/internal/cell"
	"sheetcalc/internal/fix"
	"sheetcalc/internal/formula"
)

// DefaultFixRounds bounds Fix; every round applies one edit.
const DefaultFixRounds = 8

type FixResult struct {
	Original string
	Text     string
	Applied  []fix.AppliedFix
	Value    float64
	Err      error // the failure left after the last round, if any
}

// Fixed reports whether the rewritten formula evaluates.
func (r *FixResult) Fixed() bool {
	return r.Err == nil
}

// Fix repeatedly applies the first suggested fix until the formula
// evaluates, no fix is offered, or maxRounds is reached.
func Fix(in Input, r cell.Resolver, maxDepth, maxRounds int) *FixResult {
	if maxRounds <= 0 {
		maxRounds = DefaultFixRounds
	}
	res := &FixResult{Original: in.Text, Text: in.Text}
	for round := 0; ; round++ {
		checked := formula.Check(res.Text, r, formula.Options{
			Origin:   in.Origin,
			MaxDepth: maxDepth,
			Name:     in.Name(),
		}, 0)
		if checked.Tree != nil {
			res.Value, res.Err = checked.Value, nil
			return res
		}
		res.Err = checked.Err()
		if round == maxRounds {
			return res
		}

		applied, err := fix.Apply(checked.File, checked.Bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeOnce})
		if err != nil {
			// fix.ErrNoFixes: nothing more to try
			return res
		}
		res.Text = applied.Text
		res.Applied = append(res.Applied, applied.Applied...)
	}
}

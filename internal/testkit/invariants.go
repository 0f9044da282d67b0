// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed formula:
// 1) every node span is non-empty, points at sf and lies within its content
// 2) every operand span is contained in its parent's span
// 3) operand spans are ordered left to right without overlapping
func CheckSpanInvariants(root ast.Expr, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var check func(e ast.Expr) error
	check = func(e ast.Expr) error {
		sp := e.Span()
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", e.Kind(), sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span points to different file id: got=%d want=%d", e.Kind(), sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s: span end beyond content: %d > %d", e.Kind(), sp.End, lenContent)
		}

		var prev source.Span
		for i, child := range ast.Children(e) {
			if child == nil {
				return fmt.Errorf("%s: nil operand %d", e.Kind(), i)
			}
			csp := child.Span()
			if csp.Start < sp.Start || csp.End > sp.End {
				return fmt.Errorf("%s: operand span %v is outside %v", e.Kind(), csp, sp)
			}
			if i > 0 && csp.Start < prev.End {
				return fmt.Errorf("%s: operand %d span %v overlaps %v", e.Kind(), i, csp, prev)
			}
			prev = csp
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root)
}

package ast

import (
	"testing"

	"sheetcalc/internal/token"
)

func lit(v float64) *Literal { return &Literal{Value: v} }

func TestDepthAndCount(t *testing.T) {
	// max(1, -(2*3))
	tree := &Call2{
		Fn: token.Max,
		A:  lit(1),
		B: &Unary{
			Op: ExprUnaryNeg,
			X:  &Binary{Op: ExprBinaryMul, X: lit(2), Y: lit(3)},
		},
	}

	if got := Depth(tree); got != 4 {
		t.Fatalf("Depth = %d, want 4", got)
	}
	if got := Count(tree); got != 6 {
		t.Fatalf("Count = %d, want 6", got)
	}
	if Depth(nil) != 0 {
		t.Fatalf("Depth(nil) != 0")
	}
}

func TestWalkOrderAndPrune(t *testing.T) {
	tree := &Binary{
		Op: ExprBinaryAdd,
		X:  &Call1{Fn: token.Abs, Arg: lit(1)},
		Y:  lit(2),
	}

	var order []ExprKind
	Walk(tree, func(e Expr) bool {
		order = append(order, e.Kind())
		return e.Kind() != ExprCall1
	})

	want := []ExprKind{ExprBinary, ExprCall1, ExprLit}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

package ast

// Walk visits e and its operands in pre-order. Returning false from fn skips
// the node's operands.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range Children(e) {
		Walk(child, fn)
	}
}

// Children returns the direct operands of e, left to right.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Literal:
		return nil
	case *Unary:
		return []Expr{n.X}
	case *Binary:
		return []Expr{n.X, n.Y}
	case *Call1:
		return []Expr{n.Arg}
	case *Call2:
		return []Expr{n.A, n.B}
	default:
		return nil
	}
}

// Depth is the number of nodes on the longest root-to-leaf path.
func Depth(e Expr) int {
	if e == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(e) {
		deepest = max(deepest, Depth(child))
	}
	return deepest + 1
}

// Count returns the number of nodes in the tree.
func Count(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool {
		n++
		return true
	})
	return n
}

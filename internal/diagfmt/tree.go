package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// buildExprTreeNode строит узел для выражения и всех его операндов.
func buildExprTreeNode(e ast.Expr, fs *source.FileSet) *treeNode {
	if e == nil {
		return &treeNode{label: "<nil>"}
	}
	span := formatSpan(e.Span(), fs)
	node := &treeNode{}
	switch n := e.(type) {
	case *ast.Literal:
		if n.Ref != nil {
			node.label = fmt.Sprintf("Literal %s = %s (span: %s)", n.Ref, formatNumber(n.Value), span)
		} else {
			node.label = fmt.Sprintf("Literal %s (span: %s)", formatNumber(n.Value), span)
		}
	case *ast.Unary:
		node.label = fmt.Sprintf("Unary %s (span: %s)", n.Op, span)
	case *ast.Binary:
		node.label = fmt.Sprintf("Binary %s (span: %s)", n.Op, span)
	case *ast.Call1:
		node.label = fmt.Sprintf("Call %s (span: %s)", n.Fn, span)
	case *ast.Call2:
		node.label = fmt.Sprintf("Call %s (span: %s)", n.Fn, span)
	default:
		node.label = fmt.Sprintf("%T (span: %s)", e, span)
	}
	for _, child := range ast.Children(e) {
		node.children = append(node.children, buildExprTreeNode(child, fs))
	}
	return node
}

func writeTree(sb *strings.Builder, node *treeNode, prefix string, last, root bool) {
	switch {
	case root:
		sb.WriteString(node.label)
	case last:
		sb.WriteString(prefix + "└─ " + node.label)
	default:
		sb.WriteString(prefix + "├─ " + node.label)
	}
	sb.WriteByte('\n')

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, child := range node.children {
		writeTree(sb, child, childPrefix, i == len(node.children)-1, false)
	}
}

// FormatTree печатает дерево выражения с отступами.
func FormatTree(w io.Writer, e ast.Expr, fs *source.FileSet) error {
	var sb strings.Builder
	writeTree(&sb, buildExprTreeNode(e, fs), "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && fs.Get(span.File) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Package testkit holds structural checks shared by parser, pipeline and
// fuzz tests.
package testkit

import (
	"fmt"

	"compilab/internal/ast"
	"compilab/internal/source"
)

// CheckSpanInvariants validates the spans of a tree parsed without errors:
// 1) every span is ordered and ends within the file content
// 2) every child span lies inside its parent span
// 3) every node carries a 1-based line
func CheckSpanInvariants(tree *ast.Tree, file *source.File) error {
	if tree == nil || tree.Root == nil || file == nil {
		return fmt.Errorf("nil tree or file")
	}
	size := file.Len()
	return checkNode(tree.Root, size)
}

func checkNode(n *ast.Node, size uint32) error {
	if n.Span.End < n.Span.Start {
		return fmt.Errorf("%s: inverted span %v", n.Kind, n.Span)
	}
	if n.Span.End > size {
		return fmt.Errorf("%s: span %v beyond content (%d bytes)", n.Kind, n.Span, size)
	}
	if n.Line < 1 {
		return fmt.Errorf("%s: line %d is not 1-based", n.Kind, n.Line)
	}
	for _, ch := range n.Children {
		if ch == nil {
			return fmt.Errorf("%s: nil child", n.Kind)
		}
		// child inside parent
		if ch.Span.Start < n.Span.Start || ch.Span.End > n.Span.End {
			return fmt.Errorf("%s span %v is outside %s span %v", ch.Kind, ch.Span, n.Kind, n.Span)
		}
		if err := checkNode(ch, size); err != nil {
			return err
		}
	}
	return nil
}

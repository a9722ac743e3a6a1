package parser_test

import (
	"strings"
	"testing"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/parser"
	"compilab/internal/source"
)

func parse(t *testing.T, src string) (*ast.Tree, []diag.Diagnostic) {
	t.Helper()
	f := source.NewVirtual("test", src)
	bag := diag.NewBag(0)
	tree := parser.ParseFile(f, parser.Options{Reporter: diag.BagReporter{Bag: bag, File: f}})
	return tree, bag.Items()
}

func parseOK(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, diags := parse(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for %q:\n%s", src, diag.FormatShort(diags, false))
	}
	return tree
}

// stmts renders top-level statements as s-expressions, one per line.
func stmts(tree *ast.Tree) string {
	parts := make([]string, 0, len(tree.Root.Children))
	for _, ch := range tree.Root.Children {
		parts = append(parts, ast.SExpr(ch))
	}
	return strings.Join(parts, "\n")
}

func newFile(src string) *source.File { return source.NewVirtual("test", src) }

func parseWith(f *source.File, bag *diag.Bag, maxErrors uint) *ast.Tree {
	return parser.ParseFile(f, parser.Options{MaxErrors: maxErrors, Reporter: diag.BagReporter{Bag: bag, File: f}})
}

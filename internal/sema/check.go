package sema

import (
	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/symbols"
)

// Options configure a semantic pass over a tree.
type Options struct {
	Reporter diag.Reporter
}

// Tree is the semantic-stage artifact: an annotated copy of the syntax
// tree plus the symbol table built while checking it.
type Tree struct {
	Root    *ast.Node
	Symbols *symbols.Table
}

// Check resolves names, infers expression types and reports semantic
// diagnostics. The input tree is cloned and never mutated.
func Check(tree *ast.Tree, opts Options) *Tree {
	out := &Tree{Symbols: symbols.NewTable(16)}
	if tree == nil || tree.Root == nil {
		out.Root = &ast.Node{Kind: ast.KindProgram}
		return out
	}
	out.Root = tree.Root.Clone()

	checker := typeChecker{
		reporter: opts.Reporter,
		table:    out.Symbols,
	}
	checker.stmts(out.Root.Children)
	checker.lintSymbols()
	return out
}

type typeChecker struct {
	reporter diag.Reporter
	table    *symbols.Table
	inMain   int
}

func (tc *typeChecker) reporterOrNop() diag.Reporter {
	if tc.reporter == nil {
		return diag.NopReporter{}
	}
	return tc.reporter
}

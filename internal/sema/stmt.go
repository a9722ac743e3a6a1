package sema

import (
	"fmt"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/symbols"
)

func (tc *typeChecker) stmts(list []*ast.Node) {
	for _, st := range list {
		tc.stmt(st)
	}
}

func (tc *typeChecker) stmt(n *ast.Node) {
	switch n.Kind {
	case ast.KindDecl:
		tc.decl(n)
	case ast.KindAssign:
		target := n.Child(0)
		id, ok := tc.resolve(target, symbols.SymbolFlagAssigned)
		rhs := tc.expr(n.Child(1))
		n.Type = target.Type
		if ok && target.Type == ast.TypeInt && rhs.IsReal() {
			diag.ReportWarning(tc.reporterOrNop(), diag.SemaNarrowing, n.Span,
				fmt.Sprintf("implicit conversion from %s to int in assignment to '%s' truncates the value", rhs, tc.table.Get(id).Name)).Emit()
		}
	case ast.KindIncDec:
		tc.resolve(n.Child(0), symbols.SymbolFlagRead|symbols.SymbolFlagAssigned)
		n.Type = n.Child(0).Type
	case ast.KindRead:
		tc.resolve(n.Child(0), symbols.SymbolFlagAssigned)
	case ast.KindWrite:
		tc.expr(n.Child(0))
	case ast.KindReturn:
		if tc.inMain == 0 {
			diag.ReportError(tc.reporterOrNop(), diag.SemaReturnOutsideMain, n.Span, "return outside of main").Emit()
		}
		n.Type = tc.expr(n.Child(0))
	case ast.KindIf, ast.KindWhile:
		tc.expr(n.Child(0))
		for _, ch := range n.Children[1:] {
			tc.stmt(ch)
		}
	case ast.KindDoWhile, ast.KindRepeat:
		tc.stmt(n.Child(0))
		tc.expr(n.Child(1))
	case ast.KindMain:
		tc.inMain++
		tc.stmt(n.Child(0))
		tc.inMain--
	case ast.KindBlock:
		tc.stmts(n.Children)
	}
}

func (tc *typeChecker) decl(n *ast.Node) {
	typ := ast.TypeFromKeyword(n.Op)
	n.Type = typ
	for _, id := range n.Children {
		id.Type = typ
		prev, ok := tc.table.Insert(id.Value, typ, id.Span, id.Line)
		if ok {
			continue
		}
		first := tc.table.Get(prev)
		tc.table.Touch(prev, id.Line)
		diag.ReportError(tc.reporterOrNop(), diag.SemaRedeclared, id.Span,
			fmt.Sprintf("variable '%s' already declared as %s", id.Value, first.Type)).
			WithNote(first.Decl, "first declared here").
			Emit()
	}
}

// resolve looks up an identifier node, annotates its type and records the
// mention. ok is false for undeclared names, which are reported.
func (tc *typeChecker) resolve(id *ast.Node, flags symbols.SymbolFlags) (symbols.SymbolID, bool) {
	sid, ok := tc.table.Lookup(id.Value)
	if !ok {
		diag.ReportError(tc.reporterOrNop(), diag.SemaUndeclared, id.Span,
			fmt.Sprintf("variable '%s' used without declaration", id.Value)).Emit()
		return symbols.NoSymbolID, false
	}
	tc.table.Touch(sid, id.Line)
	tc.table.Mark(sid, flags)
	id.Type = tc.table.Get(sid).Type
	return sid, true
}

// lintSymbols emits usage warnings once the whole program was walked.
func (tc *typeChecker) lintSymbols() {
	for _, sym := range tc.table.All() {
		switch {
		case sym.Flags&symbols.SymbolFlagRead == 0:
			diag.ReportWarning(tc.reporterOrNop(), diag.SemaUnused, sym.Decl,
				fmt.Sprintf("variable '%s' declared but never used", sym.Name)).Emit()
		case sym.Flags&symbols.SymbolFlagAssigned == 0:
			diag.ReportWarning(tc.reporterOrNop(), diag.SemaNeverAssigned, sym.Decl,
				fmt.Sprintf("variable '%s' is read but never assigned", sym.Name)).Emit()
		}
	}
}

package sema

import (
	"fmt"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/symbols"
	"compilab/internal/token"
)

// expr annotates n and its operands with their types and returns n.Type.
// Undeclared identifiers stay TypeNone so they do not trigger follow-up errors.
func (tc *typeChecker) expr(n *ast.Node) ast.Type {
	if n == nil {
		return ast.TypeNone
	}
	switch n.Kind {
	case ast.KindIntLit:
		n.Type = ast.TypeInt
	case ast.KindRealLit:
		n.Type = ast.TypeDouble
	case ast.KindIdent:
		tc.resolve(n, symbols.SymbolFlagRead)
	case ast.KindUnary:
		n.Type = tc.expr(n.Child(0))
	case ast.KindBinary:
		l := tc.expr(n.Child(0))
		r := tc.expr(n.Child(1))
		n.Type = tc.binary(n, l, r)
	}
	return n.Type
}

func (tc *typeChecker) binary(n *ast.Node, l, r ast.Type) ast.Type {
	switch n.Op {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Caret:
		return ast.Promote(l, r)
	case token.Percent:
		for _, side := range []ast.Type{l, r} {
			if side.IsReal() {
				diag.ReportError(tc.reporterOrNop(), diag.SemaModuloOperand, n.Span,
					fmt.Sprintf("'%%' requires integer operands, got %s", side)).Emit()
				break
			}
		}
		return ast.TypeInt
	default:
		// сравнения и логические операторы дают int (0 или 1)
		return ast.TypeInt
	}
}

package parser

import (
	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/token"
)

func (p *Parser) parseExpr() (*ast.Node, bool) {
	return p.parseBinary(precOr)
}

// parseBinary - precedence climbing по таблице из op_table.go.
func (p *Parser) parseBinary(minPrec int) (*ast.Node, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		op := p.peek()
		prec, right := binaryPrec(op.Kind)
		if prec == 0 || prec < minPrec {
			return lhs, true
		}
		p.advance()
		next := prec + 1
		if right {
			next = prec
		}
		rhs, ok := p.parseBinary(next)
		if !ok {
			return nil, false
		}
		lhs = &ast.Node{
			Kind:     ast.KindBinary,
			Op:       op.Kind,
			Span:     lhs.Span.Cover(rhs.Span),
			Line:     lhs.Line,
			Children: []*ast.Node{lhs, rhs},
		}
	}
}

// unary := ('-'|'+') unary | primary
func (p *Parser) parseUnary() (*ast.Node, bool) {
	if p.at_or(token.Minus, token.Plus) {
		op := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.Node{
			Kind:     ast.KindUnary,
			Op:       op.Kind,
			Span:     op.Span.Cover(operand.Span),
			Line:     op.Row,
			Children: []*ast.Node{operand},
		}, true
	}
	return p.parsePrimary()
}

// primary := IntLit | RealLit | ident | '(' expr ')'
func (p *Parser) parsePrimary() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.Node{Kind: ast.KindIntLit, Value: tok.Text, Span: tok.Span, Line: tok.Row}, true
	case token.RealLit:
		p.advance()
		return &ast.Node{Kind: ast.KindRealLit, Value: tok.Text, Span: tok.Span, Line: tok.Row}, true
	case token.Ident:
		p.advance()
		return &ast.Node{Kind: ast.KindIdent, Value: tok.Text, Span: tok.Span, Line: tok.Row}, true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.at(token.RParen) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '(': expected ')', got "+describe(p.peek()))
			return nil, false
		}
		closing := p.advance()
		inner.Span = open.Span.Cover(closing.Span)
		return inner, true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return nil, false
	}
}

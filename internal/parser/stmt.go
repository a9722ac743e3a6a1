package parser

import (
	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/token"
)

// parseStmt выбирает распознаватель по первому токену.
// При false вызывающий делает resyncStmt.
func (p *Parser) parseStmt() (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.KwInt, token.KwFloat, token.KwDouble:
		return p.parseDecl()
	case token.Ident:
		return p.parseAssignOrIncDec()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwCin, token.KwRead:
		return p.parseRead()
	case token.KwCout, token.KwWrite:
		return p.parseWrite()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwMain:
		return p.parseMain()
	case token.LBrace:
		return p.parseBlock()
	case token.Colon:
		p.err(diag.SynColonOutsideCase, "':' is only allowed after a case label")
		p.advance()
		return nil, false
	default:
		p.err(diag.SynUnexpectedToken, "unexpected token "+describe(p.peek())+" at start of statement")
		p.advance()
		return nil, false
	}
}

// decl := ('int'|'float'|'double') ident (',' ident)* ';'
func (p *Parser) parseDecl() (*ast.Node, bool) {
	kw := p.advance()
	n := &ast.Node{Kind: ast.KindDecl, Op: kw.Kind, Span: kw.Span, Line: kw.Row, Type: ast.TypeFromKeyword(kw.Kind)}
	for {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		n.Children = append(n.Children, id)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	n.Span = n.Span.Cover(p.lastSpan)
	return n, true
}

// assign := ident '=' expr ';' | ident ('++'|'--') ';'
func (p *Parser) parseAssignOrIncDec() (*ast.Node, bool) {
	id, _ := p.parseIdent()
	var n *ast.Node
	switch {
	case p.at_or(token.PlusPlus, token.MinusMinus):
		op := p.advance()
		n = &ast.Node{Kind: ast.KindIncDec, Op: op.Kind, Line: id.Line, Children: []*ast.Node{id}}
	case p.at(token.Assign):
		p.advance()
		rhs, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n = &ast.Node{Kind: ast.KindAssign, Op: token.Assign, Line: id.Line, Children: []*ast.Node{id, rhs}}
	default:
		p.err(diag.SynUnexpectedToken, "expected '=', '++' or '--' after '"+id.Value+"', got "+describe(p.peek()))
		return nil, false
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	n.Span = id.Span.Cover(p.lastSpan)
	return n, true
}

// if := 'if' expr block ('else' (block|if))?
func (p *Parser) parseIf() (*ast.Node, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	n := &ast.Node{Kind: ast.KindIf, Line: kw.Row, Children: []*ast.Node{cond, then}}
	if p.at(token.KwElse) {
		p.advance()
		var els *ast.Node
		if p.at(token.KwIf) {
			els, ok = p.parseIf()
		} else {
			els, ok = p.parseBlock()
		}
		if !ok {
			return nil, false
		}
		n.Children = append(n.Children, els)
	}
	n.Span = kw.Span.Cover(p.lastSpan)
	return n, true
}

// while := 'while' expr block
func (p *Parser) parseWhile() (*ast.Node, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindWhile, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{cond, body}}, true
}

// dowhile := 'do' block 'while' expr ';'
func (p *Parser) parseDoWhile() (*ast.Node, bool) {
	return p.parseLoopTail(ast.KindDoWhile, token.KwWhile, "expected 'while' after do block")
}

// repeat := 'repeat' block 'until' expr ';'
func (p *Parser) parseRepeat() (*ast.Node, bool) {
	return p.parseLoopTail(ast.KindRepeat, token.KwUntil, "expected 'until' after repeat block")
}

func (p *Parser) parseLoopTail(kind ast.Kind, tail token.Kind, msg string) (*ast.Node, bool) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tail, diag.SynUnexpectedToken, msg+", got "+describe(p.peek())); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	return &ast.Node{Kind: kind, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{body, cond}}, true
}

// read := ('cin'|'read') ident ';'
func (p *Parser) parseRead() (*ast.Node, bool) {
	kw := p.advance()
	id, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindRead, Op: kw.Kind, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{id}}, true
}

// write := ('cout'|'write') expr ';'
func (p *Parser) parseWrite() (*ast.Node, bool) {
	kw := p.advance()
	e, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindWrite, Op: kw.Kind, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{e}}, true
}

// return := 'return' expr ';'
func (p *Parser) parseReturn() (*ast.Node, bool) {
	kw := p.advance()
	e, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon() {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindReturn, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{e}}, true
}

// main := 'main' '(' ')' block
func (p *Parser) parseMain() (*ast.Node, bool) {
	kw := p.advance()
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after main, got "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	if !p.at(token.RParen) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '(' after main")
		return nil, false
	}
	p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindMain, Span: kw.Span.Cover(p.lastSpan), Line: kw.Row, Children: []*ast.Node{body}}, true
}

// block := '{' stmt* '}'
// Ошибки внутри блока восстанавливаются локально; блок сам по себе
// проваливается только без '{' или без закрывающей '}'.
func (p *Parser) parseBlock() (*ast.Node, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', got "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	n := &ast.Node{Kind: ast.KindBlock, Span: open.Span, Line: open.Row}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '{'")
			return nil, false
		}
		if st, ok := p.parseStmt(); ok {
			n.Children = append(n.Children, st)
		} else {
			p.resyncStmt()
		}
	}
	closing := p.advance()
	n.Span = open.Span.Cover(closing.Span)
	return n, true
}

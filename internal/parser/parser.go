package parser

import (
	"slices"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/lexer"
	"compilab/internal/source"
	"compilab/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser - состояние парсера на один буфер
type Parser struct {
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseTokens разбирает готовый поток токенов. Invalid токены пропускаются:
// о них уже сообщил лексер.
func ParseTokens(toks []token.Token, opts Options) *ast.Tree {
	p := &Parser{toks: filterInvalid(toks), opts: opts}
	return &ast.Tree{Root: p.parseProgram()}
}

// ParseFile лексит и разбирает файл, оба этапа пишут в один Reporter.
func ParseFile(file *source.File, opts Options) *ast.Tree {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return ParseTokens(toks, opts)
}

func filterInvalid(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks)+1)
	for _, t := range toks {
		if t.Kind != token.Invalid {
			out = append(out, t)
		}
	}
	if len(out) == 0 || out[len(out)-1].Kind != token.EOF {
		var end uint32
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span.End
		}
		out = append(out, token.Token{Kind: token.EOF, Span: source.Span{Start: end, End: end}})
	}
	return out
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseProgram - основной цикл верхнего уровня: пока не EOF - parseStmt.
func (p *Parser) parseProgram() *ast.Node {
	root := &ast.Node{Kind: ast.KindProgram, Span: p.peek().Span, Line: 1}
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "unexpected '}' without matching '{'")
			p.advance()
			continue
		}
		if st, ok := p.parseStmt(); ok {
			root.Children = append(root.Children, st)
		} else {
			p.resyncStmt()
		}
	}
	root.Span = root.Span.Cover(p.peek().Span)
	return root
}

// resyncStmt - восстановление после ошибки в операторе:
// прокручиваем до ';' (съедаем его), '}' ИЛИ до стартового токена следующего оператора ИЛИ EOF.
func (p *Parser) resyncStmt() {
	for !p.at(token.EOF) {
		switch {
		case p.at(token.Semicolon):
			p.advance()
			return
		case p.at(token.RBrace), isStmtStarter(p.peek().Kind):
			return
		}
		p.advance()
	}
}

// isStmtStarter reports whether k can begin a statement.
func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwInt, token.KwFloat, token.KwDouble, token.Ident,
		token.KwIf, token.KwWhile, token.KwDo, token.KwRepeat,
		token.KwCin, token.KwRead, token.KwCout, token.KwWrite,
		token.KwReturn, token.KwMain, token.LBrace:
		return true
	default:
		return false
	}
}

// parseIdent - ожидает Ident, на ошибке - репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (*ast.Node, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return &ast.Node{Kind: ast.KindIdent, Value: tok.Text, Span: tok.Span, Line: tok.Row}, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.peek()))
	return nil, false
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	return "'" + t.Text + "'"
}

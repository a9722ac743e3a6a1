package parser

import (
	"compilab/internal/diag"
	"compilab/internal/source"
	"compilab/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.pos++
	}
	return tok
}

// afterLast - пустой span сразу после последнего съеденного токена
func (p *Parser) afterLast() source.Span {
	return source.Span{Start: p.lastSpan.End, End: p.lastSpan.End}
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.peek().Span
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectSemicolon репортит отсутствие ';' в конце предыдущего токена,
// чтобы строка диагностики совпадала со строкой оператора.
func (p *Parser) expectSemicolon() bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.afterLast(), "expected ';', got "+describe(p.peek()))
	return false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.peek().Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

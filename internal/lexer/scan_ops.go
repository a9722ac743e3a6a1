package lexer

import (
	"compilab/internal/diag"
	"compilab/internal/token"
)

// scanOperatorOrPunct - жадно: сначала двухсимвольные, потом одиночные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	var kind token.Kind
	switch {
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('!', '='):
		kind = token.BangEq
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('+', '+'):
		kind = token.PlusPlus
	case lx.try2('-', '-'):
		kind = token.MinusMinus
	default:
		kind = single(lx.cursor.Peek())
		if kind == token.Invalid {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			text := lx.text(sp)
			lx.report(diag.LexUnknownChar, sp, "unknown character '"+text+"'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func single(b byte) token.Kind {
	switch b {
	case '+':
		return token.Plus
	case '-':
		return token.Minus
	case '*':
		return token.Star
	case '/':
		return token.Slash
	case '%':
		return token.Percent
	case '^':
		return token.Caret
	case '<':
		return token.Lt
	case '>':
		return token.Gt
	case '=':
		return token.Assign
	case '&':
		return token.Amp
	case '|':
		return token.Pipe
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case ',':
		return token.Comma
	case ':':
		return token.Colon
	case ';':
		return token.Semicolon
	}
	return token.Invalid
}

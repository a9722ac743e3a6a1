package lexer

import (
	"compilab/internal/diag"
	"compilab/internal/token"
)

// scanNumber: DEC ('.' DEC)?
// "12." без цифр после точки даёт Invalid и LEX1004.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	kind := token.IntLit
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			text := lx.text(sp)
			lx.report(diag.LexBadNumber, sp, "malformed number '"+text+"': expected digits after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.RealLit
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

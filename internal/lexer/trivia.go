package lexer

import (
	"compilab/internal/diag"
)

// skipTrivia пропускает пробельные символы и комментарии перед значимым токеном.
//   - //... до \n
//   - /* ... */ без вложенности; если не закрыт - репорт и обрезаем на EOF
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '/' {
			b0, b1, ok := lx.cursor.Peek2()
			if ok && b0 == '/' && b1 == '/' {
				lx.skipLineComment()
				continue
			}
			if ok && b0 == '/' && b1 == '*' {
				lx.skipBlockComment()
				continue
			}
		}
		return
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

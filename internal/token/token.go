package token

import (
	"compilab/internal/source"
)

// Token represents a single source token with its location.
// Row and Col are 1-based and point at Span.Start.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Row  int
	Col  int
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == RealLit
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Semicolon
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwIf && t.Kind <= KwCout
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeName reports whether the token starts a declaration.
func (t Token) IsTypeName() bool {
	return t.Kind == KwInt || t.Kind == KwFloat || t.Kind == KwDouble
}

package token_test

import (
	"testing"

	"compilab/internal/source"
	"compilab/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassifiers(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.RealLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Caret,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Assign, token.PlusPlus, token.MinusMinus, token.Amp, token.Pipe,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.Comma, token.Colon, token.Semicolon,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
		if tok(k).IsKeyword() || tok(k).IsLiteral() {
			t.Fatalf("%v misclassified", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.EOF, token.Invalid, token.KwIf} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindStringAndSymbol(t *testing.T) {
	cases := []struct {
		k        token.Kind
		name     string
		sym      string
		category string
	}{
		{token.PlusPlus, "PlusPlus", "++", "operator"},
		{token.KwRepeat, "KwRepeat", "repeat", "keyword"},
		{token.Semicolon, "Semicolon", ";", "punctuation"},
		{token.RealLit, "RealLit", "RealLit", "number"},
		{token.Ident, "Ident", "Ident", "identifier"},
		{token.Invalid, "Invalid", "Invalid", "invalid"},
	}
	for _, tc := range cases {
		if got := tc.k.String(); got != tc.name {
			t.Errorf("String() = %q, want %q", got, tc.name)
		}
		if got := tc.k.Symbol(); got != tc.sym {
			t.Errorf("%s Symbol() = %q, want %q", tc.name, got, tc.sym)
		}
		if got := tc.k.Category(); got != tc.category {
			t.Errorf("%s Category() = %q, want %q", tc.name, got, tc.category)
		}
	}
}

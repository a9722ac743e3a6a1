package lexer_test

import (
	"testing"

	"compilab/internal/diag"
	"compilab/internal/lexer"
	"compilab/internal/source"
	"compilab/internal/token"

	"github.com/google/go-cmp/cmp"
)

func lex(t *testing.T, src string) ([]token.Token, []diag.Diagnostic) {
	t.Helper()
	f := source.NewVirtual("test", src)
	bag := diag.NewBag(0)
	toks := lexer.Tokenize(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag, File: f}})
	return toks, bag.Items()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"decl", "int x, y;", []token.Kind{token.KwInt, token.Ident, token.Comma, token.Ident, token.Semicolon, token.EOF}},
		{"assign real", "x = 3.14;", []token.Kind{token.Ident, token.Assign, token.RealLit, token.Semicolon, token.EOF}},
		{"two char ops", "a==b!=c<=d>=e", []token.Kind{
			token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident,
			token.LtEq, token.Ident, token.GtEq, token.Ident, token.EOF,
		}},
		{"incdec", "i++ j--", []token.Kind{token.Ident, token.PlusPlus, token.Ident, token.MinusMinus, token.EOF}},
		{"greedy plus", "a+++b", []token.Kind{token.Ident, token.PlusPlus, token.Plus, token.Ident, token.EOF}},
		{"longest match", "<>=", []token.Kind{token.Lt, token.GtEq, token.EOF}},
		{"single ops", "+-*/%^< > =&|(){}:", []token.Kind{
			token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Caret,
			token.Lt, token.Gt, token.Assign, token.Amp, token.Pipe,
			token.LParen, token.RParen, token.LBrace, token.RBrace, token.Colon, token.EOF,
		}},
		{"keywords", "if else do while repeat until read write float double main return cin cout", []token.Kind{
			token.KwIf, token.KwElse, token.KwDo, token.KwWhile, token.KwRepeat, token.KwUntil,
			token.KwRead, token.KwWrite, token.KwFloat, token.KwDouble, token.KwMain, token.KwReturn,
			token.KwCin, token.KwCout, token.EOF,
		}},
		{"ident with digits", "_tmp1 x2y", []token.Kind{token.Ident, token.Ident, token.EOF}},
		{"line comment", "a // comment\nb", []token.Kind{token.Ident, token.Ident, token.EOF}},
		{"block comment", "a /* multi\nline */ b", []token.Kind{token.Ident, token.Ident, token.EOF}},
		{"slash not comment", "a / b", []token.Kind{token.Ident, token.Slash, token.Ident, token.EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, diags := lex(t, tc.src)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(diags, false))
			}
			if d := cmp.Diff(tc.want, kinds(toks)); d != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestTokenTextMatchesSpan(t *testing.T) {
	src := "main() {\n  double r;\n  r = 12.5 ^ 2;\n}"
	toks, _ := lex(t, src)
	for _, tk := range toks {
		if got := src[tk.Span.Start:tk.Span.End]; got != tk.Text {
			t.Fatalf("%v: text %q does not match span %q", tk.Kind, tk.Text, got)
		}
	}
	if last := toks[len(toks)-1]; last.Kind != token.EOF || last.Span.Start != uint32(len(src)) {
		t.Fatalf("last token = %+v", last)
	}
}

func TestLexicalErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		short string
		kinds []token.Kind
	}{
		{
			name:  "lone bang",
			src:   "a ! b",
			short: "error LEX1001 1:3 unknown character '!'",
			kinds: []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF},
		},
		{
			name:  "unknown symbol on second line",
			src:   "x;\n  @",
			short: "error LEX1001 2:3 unknown character '@'",
			kinds: []token.Kind{token.Ident, token.Semicolon, token.Invalid, token.EOF},
		},
		{
			name:  "multibyte rune is one token",
			src:   "é1",
			short: "error LEX1001 1:1 unknown character 'é'",
			kinds: []token.Kind{token.Invalid, token.IntLit, token.EOF},
		},
		{
			name:  "number without fraction",
			src:   "x = 12.;",
			short: "error LEX1004 1:5 malformed number '12.': expected digits after '.'",
			kinds: []token.Kind{token.Ident, token.Assign, token.Invalid, token.Semicolon, token.EOF},
		},
		{
			name:  "unterminated block comment",
			src:   "a /* never\nclosed",
			short: "error LEX1003 1:3 unterminated block comment",
			kinds: []token.Kind{token.Ident, token.EOF},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, diags := lex(t, tc.src)
			if got := diag.FormatShort(diags, false); got != tc.short {
				t.Fatalf("diagnostics:\n got %q\nwant %q", got, tc.short)
			}
			if d := cmp.Diff(tc.kinds, kinds(toks)); d != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestRecoveryKeepsScanning(t *testing.T) {
	toks, diags := lex(t, "! ! ! int")
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(diags))
	}
	if toks[len(toks)-2].Kind != token.KwInt {
		t.Fatalf("lexer stopped early: %v", kinds(toks))
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New(source.NewVirtual("t", "a b"), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	lx.Next()
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must be sticky")
	}
}

package parser_test

import "testing"

func TestExpressionPrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "(Binary + (IntLit 1) (Binary * (IntLit 2) (IntLit 3)))"},
		{"(1 + 2) * 3", "(Binary * (Binary + (IntLit 1) (IntLit 2)) (IntLit 3))"},
		{"a - b - c", "(Binary - (Binary - (Ident a) (Ident b)) (Ident c))"},
		{"2 ^ 3 ^ 2", "(Binary ^ (IntLit 2) (Binary ^ (IntLit 3) (IntLit 2)))"},
		{"a * b ^ 2", "(Binary * (Ident a) (Binary ^ (Ident b) (IntLit 2)))"},
		{"-a ^ 2", "(Binary ^ (Unary - (Ident a)) (IntLit 2))"},
		{"a < b == c > d", "(Binary == (Binary < (Ident a) (Ident b)) (Binary > (Ident c) (Ident d)))"},
		{"a | b & c", "(Binary | (Ident a) (Binary & (Ident b) (Ident c)))"},
		{"a & b | c & d", "(Binary | (Binary & (Ident a) (Ident b)) (Binary & (Ident c) (Ident d)))"},
		{"x % 2 != 0", "(Binary != (Binary % (Ident x) (IntLit 2)) (IntLit 0))"},
		{"- + 3.5", "(Unary - (Unary + (RealLit 3.5)))"},
		{"a + b <= c * 2", "(Binary <= (Binary + (Ident a) (Ident b)) (Binary * (Ident c) (IntLit 2)))"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			tree := parseOK(t, "cout "+tc.expr+";")
			got := stmts(tree)
			want := "(Write cout " + tc.want + ")"
			if got != want {
				t.Fatalf("\n got %s\nwant %s", got, want)
			}
		})
	}
}

func TestParenSpanCoversDelimiters(t *testing.T) {
	tree := parseOK(t, "x = (1+2);")
	rhs := tree.Root.Children[0].Child(1)
	if rhs.Span.Start != 4 || rhs.Span.End != 9 {
		t.Fatalf("span = %v", rhs.Span)
	}
}

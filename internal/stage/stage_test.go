package stage

import "testing"

func TestOrderAndNeighbours(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("expected %d stages, got %d", Count, len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("stages not ordered: %v before %v", all[i-1], all[i])
		}
		prev, ok := all[i].Prev()
		if !ok || prev != all[i-1] {
			t.Errorf("%v.Prev() = %v, %v", all[i], prev, ok)
		}
		next, ok := all[i-1].Next()
		if !ok || next != all[i] {
			t.Errorf("%v.Next() = %v, %v", all[i-1], next, ok)
		}
	}
	if _, ok := Lexical.Prev(); ok {
		t.Error("lexical must have no predecessor")
	}
	if _, ok := Execution.Next(); ok {
		t.Error("execution must have no successor")
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Stage{
		"lexical":   Lexical,
		"LEX":       Lexical,
		"parse":     Syntax,
		" semantic": Semantic,
		"run":       Execution,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := Parse("link"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestErrorKind(t *testing.T) {
	want := []string{"LexicalError", "SyntaxError", "SemanticError", "RuntimeError"}
	for i, s := range All() {
		if s.ErrorKind() != want[i] {
			t.Errorf("%v.ErrorKind() = %q, want %q", s, s.ErrorKind(), want[i])
		}
	}
}

package lexer

import (
	"testing"

	"compilab/internal/source"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(source.NewVirtual("test", "a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("expected EOF behaviour at end")
	}
}

func TestPeek2AtBoundary(t *testing.T) {
	cursor := NewCursor(source.NewVirtual("test", "ab"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(source.NewVirtual("test", "hello"))
	cursor.Bump()
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if sp := cursor.SpanFrom(m); sp.Start != 1 || sp.End != 3 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 1 {
		t.Fatalf("Reset left Off=%d", cursor.Off)
	}
	if !cursor.Eat('e') || cursor.Eat('x') {
		t.Fatal("Eat mismatch")
	}
}

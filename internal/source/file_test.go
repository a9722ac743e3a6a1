package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePositions(t *testing.T) {
	f := NewVirtual("buf", "ab\ncd\n\nx")

	cases := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // сам '\n' принадлежит первой строке
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
	}
	for _, c := range cases {
		start, _ := f.Resolve(Span{Start: c.off, End: c.off})
		if start.Line != c.line || start.Col != c.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", c.off, start.Line, start.Col, c.line, c.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	f := NewVirtual("buf", "first\nsecond\nthird")
	want := []string{"", "first", "second", "third", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestTextClampsToContent(t *testing.T) {
	f := NewVirtual("buf", "hello")
	if got := f.Text(Span{Start: 1, End: 99}); got != "ello" {
		t.Fatalf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 9, End: 12}); got != "" {
		t.Fatalf("Text beyond end = %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tny")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("int x;\r\nx = 1;\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(f.Content) != "int x;\nx = 1;\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newlines, got %d", len(f.LineIdx))
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute accent → "é"
	decomposed := []byte("cafe\u0301")
	out, flags := Normalize(decomposed)
	if string(out) != "caf\u00e9" {
		t.Fatalf("expected composed form, got %q", out)
	}
	if flags&FileNormalizedNFC == 0 {
		t.Fatal("expected NFC flag")
	}
}

package pipeline

// SourceBuffer holds the editor text and cursor. Every text mutation bumps
// the generation; a generation value is never reused.
//
// SourceBuffer is not safe for concurrent use, Session serializes access.
type SourceBuffer struct {
	text       string
	row, col   int
	dirty      bool
	generation uint64
}

// BufferSnapshot is an immutable copy of the buffer state.
type BufferSnapshot struct {
	Text         string `json:"text" msgpack:"text"`
	CursorRow    int    `json:"cursor_row" msgpack:"cursor_row"`
	CursorColumn int    `json:"cursor_column" msgpack:"cursor_column"`
	Dirty        bool   `json:"dirty" msgpack:"dirty"`
	Generation   uint64 `json:"generation" msgpack:"generation"`
}

// NewSourceBuffer returns an empty, clean buffer at generation 0.
func NewSourceBuffer() *SourceBuffer {
	return &SourceBuffer{}
}

// SetText replaces the text, marks the buffer dirty and returns the new generation.
func (b *SourceBuffer) SetText(text string) uint64 {
	b.text = text
	b.dirty = true
	b.generation++
	return b.generation
}

// SetCursor moves the cursor. Negative coordinates are clamped to 0.
func (b *SourceBuffer) SetCursor(row, col int) {
	b.row = max(row, 0)
	b.col = max(col, 0)
}

func (b *SourceBuffer) MarkSaved() {
	b.dirty = false
}

func (b *SourceBuffer) Text() string { return b.text }

func (b *SourceBuffer) Generation() uint64 { return b.generation }

func (b *SourceBuffer) Dirty() bool { return b.dirty }

func (b *SourceBuffer) Snapshot() BufferSnapshot {
	return BufferSnapshot{
		Text:         b.text,
		CursorRow:    b.row,
		CursorColumn: b.col,
		Dirty:        b.dirty,
		Generation:   b.generation,
	}
}

// reset empties the buffer; the generation moves forward to a fresh baseline.
func (b *SourceBuffer) reset() uint64 {
	b.text = ""
	b.row, b.col = 0, 0
	b.dirty = false
	b.generation++
	return b.generation
}

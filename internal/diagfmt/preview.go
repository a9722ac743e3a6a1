package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"

	"compilab/internal/source"
)

// excerpt is the rendered source context of one span.
type excerpt struct {
	lines  []excerptLine
	caret  int // отступ подчёркивания в колонках экрана
	length int // длина подчёркивания
	target int // индекс строки с подчёркиванием
}

type excerptLine struct {
	num  uint32
	text string
}

// buildExcerpt collects the line of span plus context lines around it.
func buildExcerpt(f *source.File, span source.Span, context, width int) (excerpt, error) {
	if f == nil {
		return excerpt{}, fmt.Errorf("nil file")
	}
	if span.Start > f.Len() {
		return excerpt{}, fmt.Errorf("span start %d out of range", span.Start)
	}
	startPos, endPos := f.Resolve(span)
	line := startPos.Line

	ctx, err := safecast.Conv[uint32](max(context, 0))
	if err != nil {
		return excerpt{}, fmt.Errorf("context overflow: %w", err)
	}
	lineCount, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return excerpt{}, fmt.Errorf("line count overflow: %w", err)
	}

	first := uint32(1)
	if line > ctx {
		first = line - ctx
	}
	last := min(line+ctx, lineCount)

	var ex excerpt
	for n := first; n <= last; n++ {
		text := strings.ReplaceAll(f.GetLine(n), "\t", " ")
		if n == line {
			ex.target = len(ex.lines)
		}
		if width > 0 && runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width, "…")
		}
		ex.lines = append(ex.lines, excerptLine{num: n, text: text})
	}

	full := strings.ReplaceAll(f.GetLine(line), "\t", " ")
	col := int(startPos.Col) - 1
	if col > len(full) {
		col = len(full)
	}
	ex.caret = runewidth.StringWidth(full[:col])

	end := len(full)
	if endPos.Line == line {
		end = min(int(endPos.Col)-1, len(full))
	}
	if end > col {
		ex.length = runewidth.StringWidth(full[col:end])
	}
	ex.length = max(ex.length, 1)
	return ex, nil
}

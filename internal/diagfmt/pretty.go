package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"compilab/internal/diag"
	"compilab/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид в переданном порядке.
// Для каждой печатает
//
//	<path>:<row>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и заметки.
// Диагностики без позиции (row 0) печатаются без контекста.
func Pretty(w io.Writer, diags []diag.Diagnostic, file *source.File, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	path := displayPath(file, opts.PathMode, opts.BaseDir)

	for i, d := range diags {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		var sb strings.Builder
		loc := path
		if d.Row > 0 {
			loc = fmt.Sprintf("%s:%d:%d", path, d.Row, d.Column)
		}
		sb.WriteString(p.path.Sprint(loc + ":"))
		sb.WriteByte(' ')
		sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
		sb.WriteByte(' ')
		sb.WriteString(p.code.Sprint(d.Code.ID() + ":"))
		sb.WriteByte(' ')
		sb.WriteString(d.Message)
		if opts.ShowStage {
			fmt.Fprintf(&sb, " [%s]", d.Stage.ErrorKind())
		}
		sb.WriteByte('\n')

		if d.Row > 0 && file != nil {
			writeExcerpt(&sb, p, file, d.Span, opts, p.caret, "")
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				row, col := 0, 0
				if file != nil {
					row, col = file.Position(n.Span.Start)
				}
				fmt.Fprintf(&sb, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), path, row, col, n.Msg)
				if file != nil {
					writeExcerpt(&sb, p, file, n.Span, opts, p.note, "  ")
				}
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeExcerpt(sb *strings.Builder, p palette, file *source.File, span source.Span, opts PrettyOpts, mark *color.Color, indent string) {
	ex, err := buildExcerpt(file, span, opts.Context, opts.Width)
	if err != nil {
		return
	}
	gw := len(fmt.Sprint(ex.lines[len(ex.lines)-1].num))
	for i, ln := range ex.lines {
		fmt.Fprintf(sb, "%s%s %s\n", indent, p.gutter.Sprintf("%*d |", gw, ln.num), ln.text)
		if i == ex.target {
			under := "^" + strings.Repeat("~", ex.length-1)
			fmt.Fprintf(sb, "%s%s %s%s\n", indent, p.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", ex.caret), mark.Sprint(under))
		}
	}
}

func displayPath(file *source.File, mode PathMode, baseDir string) string {
	if file == nil {
		return "<buffer>"
	}
	return file.FormatPath(mode.String(), baseDir)
}

// Summary renders "N error(s), M warning(s)" for a diagnostic list.
func Summary(diags []diag.Diagnostic) string {
	errs := diag.Count(diags, diag.SevError)
	warns := diag.Count(diags, diag.SevWarning)
	return fmt.Sprintf("%d %s, %d %s", errs, plural(errs, "error"), warns, plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "<severity> <code> <row>:<col> <message>", in the order given.
// The result is stable and suited for golden comparisons in tests.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %d:%d %s", severityLabel(d.Severity), d.Code.ID(), d.Row, d.Column, sanitizeMessage(d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), n.Span, sanitizeMessage(n.Msg))
			}
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

package diag

import (
	"fmt"

	"compilab/internal/source"
	"compilab/internal/stage"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of an analysis stage. Row and Column are
// 1-based and resolved from Span against the buffer the stage analysed.
type Diagnostic struct {
	Stage    stage.Stage
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
	Row      int
	Column   int
	Notes    []Note
}

func (d Diagnostic) IsError() bool { return d.Severity >= SevError }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s %s: %s", d.Row, d.Column, d.Severity, d.Code.ID(), d.Message)
}

// Clone copies the diagnostic together with its notes.
func (d Diagnostic) Clone() Diagnostic {
	if len(d.Notes) > 0 {
		d.Notes = append([]Note(nil), d.Notes...)
	}
	return d
}

package vm

import (
	"errors"
	"fmt"

	"compilab/internal/diag"
	"compilab/internal/source"
)

// Error is a runtime failure of the interpreted program.
type Error struct {
	Code    diag.Code
	Message string
	Span    source.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("runtime %s: %s", e.Code.ID(), e.Message)
}

// errReturn unwinds execution after a return statement.
var errReturn = errors.New("return")

func runtimeErr(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Message: fmt.Sprintf(format, args...)}
}

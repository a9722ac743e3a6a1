package symbols

import (
	"strings"

	"compilab/internal/ast"
	"compilab/internal/source"
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	// SymbolFlagRead is set once the variable is read in an expression.
	SymbolFlagRead SymbolFlags = 1 << iota
	// SymbolFlagAssigned is set by assignment, ++/-- or cin/read.
	SymbolFlagAssigned
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagRead != 0 {
		labels = append(labels, "read")
	}
	if f&SymbolFlagAssigned != 0 {
		labels = append(labels, "assigned")
	}
	return labels
}

func (f SymbolFlags) String() string { return strings.Join(f.Strings(), ",") }

// Symbol is one declared variable.
type Symbol struct {
	Name  string
	Type  ast.Type
	Loc   int // последовательный адрес в памяти, с 0
	Decl  source.Span
	Lines []int // строки объявления и всех упоминаний, без повторов
	Flags SymbolFlags
}

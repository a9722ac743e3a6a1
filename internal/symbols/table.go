package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"compilab/internal/ast"
	"compilab/internal/source"
)

// Table stores variables in declaration order. The language has a single
// global scope, so a name maps to at most one symbol.
type Table struct {
	syms   []Symbol
	byName map[string]SymbolID
}

// NewTable builds a fresh table with an optional capacity hint.
func NewTable(capHint int) *Table {
	capHint = max(capHint, 0)
	return &Table{
		syms:   make([]Symbol, 0, capHint),
		byName: make(map[string]SymbolID, capHint),
	}
}

// Insert declares name. If the name already exists the existing ID is
// returned with ok=false and the table is not modified.
func (t *Table) Insert(name string, typ ast.Type, decl source.Span, line int) (SymbolID, bool) {
	if id, ok := t.byName[name]; ok {
		return id, false
	}
	n, err := safecast.Conv[uint32](len(t.syms) + 1)
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	id := SymbolID(n)
	t.syms = append(t.syms, Symbol{
		Name:  name,
		Type:  typ,
		Loc:   len(t.syms),
		Decl:  decl,
		Lines: []int{line},
	})
	t.byName[name] = id
	return id, true
}

// Lookup finds a symbol by name.
func (t *Table) Lookup(name string) (SymbolID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Get returns the symbol for id or nil.
func (t *Table) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) > len(t.syms) {
		return nil
	}
	return &t.syms[id-1]
}

// Touch records a mention of the symbol on line.
func (t *Table) Touch(id SymbolID, line int) {
	sym := t.Get(id)
	if sym == nil || slices.Contains(sym.Lines, line) {
		return
	}
	sym.Lines = append(sym.Lines, line)
}

// Mark sets flags on the symbol.
func (t *Table) Mark(id SymbolID, flags SymbolFlags) {
	if sym := t.Get(id); sym != nil {
		sym.Flags |= flags
	}
}

// All returns a copy of every symbol in declaration order.
func (t *Table) All() []Symbol {
	out := make([]Symbol, len(t.syms))
	for i, s := range t.syms {
		s.Lines = slices.Clone(s.Lines)
		out[i] = s
	}
	return out
}

func (t *Table) Len() int { return len(t.syms) }

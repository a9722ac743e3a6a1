package diag

import (
	"fmt"
	"sort"
)

type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag создаёт Bag с лимитом max; max <= 0 означает без лимита.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	return b.HasAtLeast(SevError)
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	return b.HasAtLeast(SevWarning)
}

func (b *Bag) HasAtLeast(sev Severity) bool {
	return HasAtLeast(b.items, sev)
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Sort упорядочивает диагностики по (row, column); при равенстве
// сохраняется порядок, в котором стадия их сообщила.
func (b *Bag) Sort() {
	SortByPosition(b.items)
}

// простая дедупликация (по Code+Span+Message)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Span.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

// SortByPosition sorts diagnostics stably by row, then column.
func SortByPosition(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Row != ds[j].Row {
			return ds[i].Row < ds[j].Row
		}
		return ds[i].Column < ds[j].Column
	})
}

// HasAtLeast reports whether any diagnostic reaches sev.
func HasAtLeast(ds []Diagnostic, sev Severity) bool {
	for i := range ds {
		if ds[i].Severity >= sev {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with exactly the given severity.
func Count(ds []Diagnostic, sev Severity) int {
	n := 0
	for i := range ds {
		if ds[i].Severity == sev {
			n++
		}
	}
	return n
}

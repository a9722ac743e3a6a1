package diag

import "compilab/internal/source"

type seenKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter пропускает дальше только первый из одинаковых отчётов
// (code, severity, span, message). Парсер после resync может повторить
// одну и ту же ошибку на том же токене.
type DedupReporter struct {
	next       Reporter
	seen       map[seenKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[seenKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := seenKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed - число отброшенных повторов.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

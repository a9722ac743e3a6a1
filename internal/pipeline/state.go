package pipeline

import (
	"slices"
	"time"

	"compilab/internal/diag"
	"compilab/internal/stage"
)

// StageResult is the record of one stage for one generation.
type StageResult struct {
	Stage       stage.Stage
	Status      Status
	Artifact    any
	Diagnostics []diag.Diagnostic
	Generation  uint64
	Elapsed     time.Duration
}

// HasErrors reports whether the result carries Error-severity diagnostics.
func (r StageResult) HasErrors() bool {
	return diag.HasAtLeast(r.Diagnostics, diag.SevError)
}

func (r StageResult) clone() StageResult {
	if r.Diagnostics != nil {
		ds := make([]diag.Diagnostic, len(r.Diagnostics))
		for i := range r.Diagnostics {
			ds[i] = r.Diagnostics[i].Clone()
		}
		r.Diagnostics = ds
	}
	return r
}

// State is the per-stage record, one entry per stage always present.
// Only the orchestrator writes it; readers get copies.
type State struct {
	results [stage.Count]StageResult
}

// NewState returns a state with every stage Pending at generation 0.
func NewState() *State {
	s := &State{}
	s.reset()
	return s
}

// Result returns a copy of the stage entry.
func (s *State) Result(st stage.Stage) StageResult {
	return s.results[st].clone()
}

// Results returns copies of all entries in stage order.
func (s *State) Results() []StageResult {
	out := make([]StageResult, 0, stage.Count)
	for i := range s.results {
		out = append(out, s.results[i].clone())
	}
	return out
}

func (s *State) set(r StageResult) {
	s.results[r.Stage] = r
}

// clearFrom makes st and every later stage Pending for gen.
func (s *State) clearFrom(st stage.Stage, gen uint64) {
	for i := int(st); i < stage.Count; i++ {
		s.results[i] = StageResult{Stage: stage.Stage(i), Status: StatusPending, Generation: gen}
	}
}

func (s *State) invalidateAll(gen uint64) {
	s.clearFrom(stage.Lexical, gen)
}

func (s *State) reset() {
	s.clearFrom(stage.Lexical, 0)
}

// Snapshot is a consistent view of the buffer and all stage results.
type Snapshot struct {
	Buffer  BufferSnapshot
	Results []StageResult
}

// Result returns the entry for st from the snapshot.
func (s Snapshot) Result(st stage.Stage) StageResult {
	for _, r := range s.Results {
		if r.Stage == st {
			return r
		}
	}
	return StageResult{Stage: st}
}

// AllDiagnostics aggregates diagnostics ordered by stage, then row and column.
func (s Snapshot) AllDiagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range s.Results {
		out = append(out, r.Diagnostics...)
	}
	slices.SortStableFunc(out, func(a, b diag.Diagnostic) int {
		if a.Stage != b.Stage {
			return int(a.Stage) - int(b.Stage)
		}
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Column - b.Column
	})
	return out
}

// Summary counts diagnostics per severity.
type Summary struct {
	Errors   int `json:"errors" msgpack:"errors"`
	Warnings int `json:"warnings" msgpack:"warnings"`
	Infos    int `json:"infos" msgpack:"infos"`
}

func (s Snapshot) Summary() Summary {
	var sum Summary
	for _, r := range s.Results {
		sum.Errors += diag.Count(r.Diagnostics, diag.SevError)
		sum.Warnings += diag.Count(r.Diagnostics, diag.SevWarning)
		sum.Infos += diag.Count(r.Diagnostics, diag.SevInfo)
	}
	return sum
}

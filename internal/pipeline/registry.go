package pipeline

import (
	"context"
	"fmt"
	"sync"

	"compilab/internal/diag"
	"compilab/internal/stage"
)

// Analyzer runs one stage. input is the previous stage's artifact, or the
// buffer text for Lexical. A returned error means the analyzer itself broke;
// problems in the analysed program are reported as diagnostics.
type Analyzer func(ctx context.Context, input any) (artifact any, diags []diag.Diagnostic, err error)

// Bind adapts a typed stage function to Analyzer.
func Bind[In, Out any](fn func(ctx context.Context, in In) (Out, []diag.Diagnostic, error)) Analyzer {
	return func(ctx context.Context, input any) (any, []diag.Diagnostic, error) {
		in, ok := input.(In)
		if !ok {
			var want In
			return nil, nil, fmt.Errorf("%w: got %T, want %T", ErrArtifactType, input, want)
		}
		out, ds, err := fn(ctx, in)
		if err != nil {
			return nil, ds, err
		}
		return out, ds, nil
	}
}

// Entry describes one registered stage.
type Entry struct {
	Stage    stage.Stage
	Name     string // analyzer name, e.g. "lexer"
	Artifact string // artifact kind, e.g. "tokens"
	Analyzer Analyzer
}

// Registry maps stages to analyzers. Register everything before the first run.
type Registry struct {
	mu      sync.RWMutex
	entries [stage.Count]*Entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register binds a for st, replacing any previous binding.
func (r *Registry) Register(st stage.Stage, name, artifact string, a Analyzer) error {
	if !st.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownStage, st)
	}
	if a == nil {
		return fmt.Errorf("register %s: %w", st, ErrNoAnalyzer)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[st] = &Entry{Stage: st, Name: name, Artifact: artifact, Analyzer: a}
	return nil
}

func (r *Registry) Lookup(st stage.Stage) (Entry, bool) {
	if r == nil || !st.Valid() {
		return Entry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e := r.entries[st]
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Stages lists registered stages in dependency order.
func (r *Registry) Stages() []stage.Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []stage.Stage
	for _, e := range r.entries {
		if e != nil {
			out = append(out, e.Stage)
		}
	}
	return out
}

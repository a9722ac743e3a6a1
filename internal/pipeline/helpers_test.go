package pipeline_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"compilab/internal/diag"
	"compilab/internal/pipeline"
	"compilab/internal/stage"
)

type stageFunc func(ctx context.Context, in any) (any, []diag.Diagnostic, error)

// fakeStage counts calls and delegates to a swappable function.
type fakeStage struct {
	mu    sync.Mutex
	fn    stageFunc
	calls atomic.Int32
}

func (f *fakeStage) set(fn stageFunc) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
}

func (f *fakeStage) analyzer() pipeline.Analyzer {
	return func(ctx context.Context, in any) (any, []diag.Diagnostic, error) {
		f.calls.Add(1)
		f.mu.Lock()
		fn := f.fn
		f.mu.Unlock()
		return fn(ctx, in)
	}
}

type fakes [stage.Count]*fakeStage

// newFakes wires four stages: lexical splits words, syntax counts them,
// semantic doubles the count, execution formats it.
func newFakes(t *testing.T) (*pipeline.Registry, *fakes) {
	t.Helper()
	fs := &fakes{}
	defaults := [stage.Count]stageFunc{
		func(_ context.Context, in any) (any, []diag.Diagnostic, error) {
			text := in.(string)
			var ds []diag.Diagnostic
			if i := strings.IndexByte(text, '@'); i >= 0 {
				ds = append(ds, diag.Diagnostic{Severity: diag.SevError, Code: diag.LexUnknownChar, Message: "unknown character '@'", Row: 1, Column: i + 1})
			}
			return strings.Fields(text), ds, nil
		},
		func(_ context.Context, in any) (any, []diag.Diagnostic, error) {
			return len(in.([]string)), nil, nil
		},
		func(_ context.Context, in any) (any, []diag.Diagnostic, error) {
			return in.(int) * 2, nil, nil
		},
		func(_ context.Context, in any) (any, []diag.Diagnostic, error) {
			return strings.Repeat("x", in.(int)), nil, nil
		},
	}
	reg := pipeline.NewRegistry()
	for _, st := range stage.All() {
		fs[st] = &fakeStage{fn: defaults[st]}
		require.NoError(t, reg.Register(st, st.String(), st.String(), fs[st].analyzer()))
	}
	return reg, fs
}

func statuses(snap pipeline.Snapshot) []pipeline.Status {
	out := make([]pipeline.Status, 0, len(snap.Results))
	for _, r := range snap.Results {
		out = append(out, r.Status)
	}
	return out
}

// recorder collects events for later inspection.
type recorder struct {
	mu  sync.Mutex
	evs []pipeline.Event
}

func (r *recorder) OnEvent(ev pipeline.Event) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}

func (r *recorder) events() []pipeline.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pipeline.Event(nil), r.evs...)
}

// blocker lets a test hold an analyzer until released.
type blocker struct {
	started chan struct{}
	release chan struct{}
}

func newBlocker() *blocker {
	return &blocker{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (b *blocker) wrap(next stageFunc) stageFunc {
	return func(ctx context.Context, in any) (any, []diag.Diagnostic, error) {
		b.started <- struct{}{}
		select {
		case <-b.release:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
		return next(ctx, in)
	}
}

func passthrough(_ context.Context, in any) (any, []diag.Diagnostic, error) {
	return in, nil, nil
}

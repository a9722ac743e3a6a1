package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"compilab/internal/diag"
	"compilab/internal/source"
	"compilab/internal/stage"
	"compilab/internal/trace"
)

// Outcome summarises how a run ended.
type Outcome uint8

const (
	// OutcomeCompleted: every requested stage succeeded.
	OutcomeCompleted Outcome = iota
	// OutcomeFailed: a stage reported errors, the cascade stopped there.
	OutcomeFailed
	// OutcomeHalted: the policy stopped the cascade after a successful stage.
	OutcomeHalted
	OutcomeSuperseded
	OutcomeCancelled
	// OutcomeInFlight: another run owns a stage for the same generation.
	OutcomeInFlight
	// OutcomeAborted: the run could not start a stage (no analyzer).
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeHalted:
		return "halted"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeInFlight:
		return "in-flight"
	case OutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// RunReport tells what a RunThrough call did.
type RunReport struct {
	Generation uint64
	Through    stage.Stage
	Reached    stage.Stage // last stage looked at
	Outcome    Outcome
	Stages     []stage.Stage // stages whose analyzer actually ran and committed
	Elapsed    time.Duration
}

type runConfig struct {
	force bool
}

type RunOption func(*runConfig)

// Force re-executes every stage even when a current result exists. A stage
// already committed for the generation is committed again; stages claimed
// by another run of the same generation are left to that run.
func Force() RunOption {
	return func(c *runConfig) { c.force = true }
}

// RunThrough analyses the current text from Lexical up to and including
// through. The returned error is nil when the run reached a verdict, even a
// failing one; ErrSuperseded, ErrInFlight, ErrUnknownStage, ErrNoAnalyzer
// or a context error otherwise.
func (s *Session) RunThrough(ctx context.Context, through stage.Stage, opts ...RunOption) (RunReport, error) {
	if !through.Valid() {
		return RunReport{Through: through, Outcome: OutcomeAborted}, fmt.Errorf("%w: %v", ErrUnknownStage, through)
	}
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	gen := s.buf.Generation()
	text := s.buf.Text()
	s.nextRun++
	runID := s.nextRun
	runCtx, cancel := context.WithCancel(ctx)
	s.cancels[runID] = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.cancels, runID)
		s.releaseClaimsLocked(runID)
		s.mu.Unlock()
		cancel()
	}()

	r := &run{
		sess:    s,
		ctx:     ctx,
		runCtx:  runCtx,
		id:      runID,
		gen:     gen,
		force:   cfg.force,
		file:    source.NewVirtual(s.name, text),
		started: time.Now(),
		span: trace.Begin(s.tracer, trace.ScopeRun, "run", 0).
			WithExtra("generation", strconv.FormatUint(gen, 10)).
			WithExtra("through", through.String()),
		report: RunReport{Generation: gen, Through: through},
	}

	var input any = text
	for st := stage.Lexical; st <= through; st++ {
		r.report.Reached = st
		out, done, err := r.step(st, input)
		if done {
			return r.report, err
		}
		input = out
	}
	return r.finish(OutcomeCompleted, nil)
}

// run carries the per-call state of one RunThrough.
type run struct {
	sess    *Session
	ctx     context.Context // caller context
	runCtx  context.Context // cancelled on edit
	id      uint64
	gen     uint64
	force   bool
	file    *source.File
	started time.Time
	span    *trace.Span
	report  RunReport
}

func (r *run) finish(out Outcome, err error) (RunReport, error) {
	r.report.Outcome = out
	r.report.Elapsed = time.Since(r.started)
	r.span.WithExtra("outcome", out.String()).
		WithExtra("stages", strconv.Itoa(len(r.report.Stages))).
		End("")
	return r.report, err
}

// step runs or reuses one stage. done reports that the run is over.
func (r *run) step(st stage.Stage, input any) (out any, done bool, err error) {
	s := r.sess
	entry, ok := s.registry.Lookup(st)

	s.mu.Lock()
	if s.buf.Generation() != r.gen {
		s.mu.Unlock()
		_, err = r.finish(OutcomeSuperseded, ErrSuperseded)
		return nil, true, err
	}

	cur := s.state.results[st]
	if !r.force && cur.Status == StatusSucceeded && cur.Generation == r.gen {
		halted := s.policy.halts(cur.Diagnostics)
		s.mu.Unlock()
		if halted {
			_, err = r.finish(OutcomeHalted, nil)
			return nil, true, err
		}
		return cur.Artifact, false, nil
	}

	if c := s.claims[st]; c.run != 0 && c.run != r.id && c.gen == r.gen {
		s.mu.Unlock()
		_, err = r.finish(OutcomeInFlight, fmt.Errorf("%s: %w", st, ErrInFlight))
		return nil, true, err
	}

	if !ok {
		s.mu.Unlock()
		_, err = r.finish(OutcomeAborted, fmt.Errorf("%w for stage %s", ErrNoAnalyzer, st))
		return nil, true, err
	}

	if cerr := r.ctx.Err(); cerr != nil {
		s.state.set(StageResult{Stage: st, Status: StatusCancelled, Generation: r.gen})
		r.clearDownstreamLocked(st)
		s.emitLocked(Event{Kind: EventStageFinished, Stage: st, Status: StatusCancelled, Generation: r.gen})
		s.mu.Unlock()
		s.flush()
		_, err = r.finish(OutcomeCancelled, cerr)
		return nil, true, err
	}

	s.state.set(StageResult{Stage: st, Status: StatusRunning, Generation: r.gen})
	r.clearDownstreamLocked(st)
	s.claims[st] = claim{gen: r.gen, run: r.id}
	s.emitLocked(Event{Kind: EventStageStarted, Stage: st, Status: StatusRunning, Generation: r.gen})
	s.mu.Unlock()
	s.flush()

	span := trace.Begin(s.tracer, trace.ScopeStage, "stage:"+st.String(), r.span.ID()).
		WithExtra("generation", strconv.FormatUint(r.gen, 10)).
		WithExtra("analyzer", entry.Name)
	start := time.Now()
	artifact, ds, aerr := invoke(r.runCtx, entry.Analyzer, input)
	elapsed := time.Since(start)

	s.mu.Lock()
	if s.claims[st].run == r.id {
		s.claims[st] = claim{}
	}

	if s.buf.Generation() != r.gen {
		s.emitLocked(Event{Kind: EventDiscarded, Stage: st, Generation: r.gen, Elapsed: elapsed})
		s.mu.Unlock()
		s.flush()
		trace.Point(s.tracer, trace.ScopeStage, "discard", r.span.ID(), st.String(),
			map[string]string{"generation": strconv.FormatUint(r.gen, 10)})
		span.WithExtra("status", "discarded").End("superseded")
		_, err = r.finish(OutcomeSuperseded, ErrSuperseded)
		return nil, true, err
	}

	if aerr != nil && r.ctx.Err() != nil {
		s.state.set(StageResult{Stage: st, Status: StatusCancelled, Generation: r.gen, Elapsed: elapsed})
		r.clearDownstreamLocked(st)
		s.emitLocked(Event{Kind: EventStageFinished, Stage: st, Status: StatusCancelled, Generation: r.gen, Elapsed: elapsed})
		s.mu.Unlock()
		s.flush()
		span.WithExtra("status", StatusCancelled.String()).End(r.ctx.Err().Error())
		_, err = r.finish(OutcomeCancelled, r.ctx.Err())
		return nil, true, err
	}

	var diags []diag.Diagnostic
	if aerr != nil {
		artifact = nil
		diags = []diag.Diagnostic{{
			Stage:    st,
			Severity: diag.SevError,
			Code:     diag.InternalAnalyzer,
			Message:  fmt.Sprintf("%s analyzer failed: %v", st, aerr),
		}}
	} else {
		diags = normalize(ds, st, r.file)
	}

	status := StatusSucceeded
	if diag.HasAtLeast(diags, diag.SevError) {
		status = StatusFailed
	}
	halted := status == StatusFailed || s.policy.halts(diags)

	s.state.set(StageResult{
		Stage:       st,
		Status:      status,
		Artifact:    artifact,
		Diagnostics: diags,
		Generation:  r.gen,
		Elapsed:     elapsed,
	})
	if halted {
		r.clearDownstreamLocked(st)
	}
	s.emitLocked(Event{
		Kind:        EventStageFinished,
		Stage:       st,
		Status:      status,
		Generation:  r.gen,
		Elapsed:     elapsed,
		Diagnostics: len(diags),
	})
	s.mu.Unlock()
	s.flush()

	span.WithExtra("status", status.String()).
		WithExtra("diagnostics", strconv.Itoa(len(diags))).
		End("")
	r.report.Stages = append(r.report.Stages, st)

	switch {
	case status == StatusFailed:
		_, err = r.finish(OutcomeFailed, nil)
		return nil, true, err
	case halted:
		_, err = r.finish(OutcomeHalted, nil)
		return nil, true, err
	}
	return artifact, false, nil
}

// invoke calls the analyzer, turning a panic into an error.
func invoke(ctx context.Context, a Analyzer, input any) (artifact any, ds []diag.Diagnostic, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			artifact, ds = nil, nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return a(ctx, input)
}

// normalize stamps the stage, resolves positions the analyzer left fully
// unset (row and column zero) from a non-zero span and orders the
// diagnostics by position.
func normalize(ds []diag.Diagnostic, st stage.Stage, file *source.File) []diag.Diagnostic {
	if len(ds) == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, len(ds))
	for i := range ds {
		d := ds[i].Clone()
		d.Stage = st
		if d.Row == 0 && d.Column == 0 && d.Span != (source.Span{}) && file != nil {
			d.Row, d.Column = file.Position(d.Span.Start)
		}
		out[i] = d
	}
	diag.SortByPosition(out)
	return out
}

// clearDownstreamLocked makes the stages after st Pending, skipping those
// another run of the same generation is executing right now.
func (r *run) clearDownstreamLocked(st stage.Stage) {
	s := r.sess
	for next := st + 1; int(next) < stage.Count; next++ {
		if c := s.claims[next]; c.run != 0 && c.run != r.id && c.gen == r.gen {
			continue
		}
		s.state.set(StageResult{Stage: next, Status: StatusPending, Generation: r.gen})
	}
}

func (s *Session) releaseClaimsLocked(runID uint64) {
	for i := range s.claims {
		if s.claims[i].run == runID {
			s.claims[i] = claim{}
		}
	}
}

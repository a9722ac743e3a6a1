// Package trace records structured events about analysis sessions.
//
// A session emits point events for edits and resets, every RunThrough
// request opens a run span, and each analyzer invocation opens a stage
// span nested under it. End events carry extras such as the generation,
// the final status and the number of diagnostics.
//
// # Usage
//
//	compilab run --trace=- --trace-level=detail prog.cl
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer, dumped after a failure
//   - MultiTracer: combines several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only
//   - LevelPhase: session and run boundaries
//   - LevelDetail: per-stage spans
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "stage:syntax", parentID)
//	defer span.End("")
package trace

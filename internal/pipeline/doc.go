// Package pipeline coordinates re-analysis of one source buffer across the
// four analysis stages.
//
// A Session owns the buffer text, the per-stage results and the stage
// registry. Every text edit bumps the buffer generation and resets all
// results to Pending. RunThrough executes stages in dependency order against
// the generation captured at call time and commits a result only when that
// generation is still current, so results computed for an older text never
// become visible.
//
// The package never imports concrete analyzers; they are bound into a
// Registry by the caller (see internal/driver).
package pipeline

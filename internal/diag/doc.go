// Package diag defines the diagnostic model shared by every analysis stage.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Stage – the stage that produced it; the pipeline stamps this field.
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form (LEX1001, SEM3002).
//   - Message – short human oriented text.
//   - Span – byte range in the analysed buffer.
//   - Row / Column – 1-based position of Span.Start.
//   - Notes – optional secondary spans.
//
// Code ranges are partitioned by stage: 1xxx lexical, 2xxx syntax,
// 3xxx semantic, 4xxx execution. 9xxx is reserved for analyzer failures
// synthesised by the pipeline.
//
// # Emitting diagnostics
//
// Analyzers report through a Reporter. BagReporter collects into a Bag and
// resolves row/column from a source.File. ReportBuilder lets a producer
// attach notes before calling Emit.
//
// Package diag performs no formatting and no IO; rendering lives in
// internal/diagfmt.
package diag

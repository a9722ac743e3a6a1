package pipeline

import "errors"

var (
	// ErrSuperseded is returned by RunThrough when the buffer changed while the
	// run was in progress and its results were discarded.
	ErrSuperseded = errors.New("pipeline: run superseded by a newer edit")
	// ErrInFlight is returned when another run is already executing a stage
	// for the same generation.
	ErrInFlight = errors.New("pipeline: stage already running for this generation")
	// ErrUnknownStage reports a stage value outside the known set.
	ErrUnknownStage = errors.New("pipeline: unknown stage")
	// ErrNoAnalyzer reports a stage without a registered analyzer.
	ErrNoAnalyzer = errors.New("pipeline: no analyzer registered")
	// ErrArtifactType reports an artifact of the wrong Go type handed to a
	// bound analyzer.
	ErrArtifactType = errors.New("pipeline: unexpected artifact type")
)

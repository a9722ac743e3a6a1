package pipeline

import "compilab/internal/diag"

// Policy decides when the cascade stops after a stage that did not fail.
// A stage whose diagnostics reach HaltOn ends the run; only Error severity
// marks a stage Failed.
type Policy struct {
	HaltOn diag.Severity
}

// DefaultPolicy halts on errors only.
func DefaultPolicy() Policy {
	return Policy{HaltOn: diag.SevError}
}

func (p Policy) halts(ds []diag.Diagnostic) bool {
	return diag.HasAtLeast(ds, p.HaltOn)
}

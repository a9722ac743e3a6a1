package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"compilab/internal/ast"
	"compilab/internal/observ"
	"compilab/internal/pipeline"
	"compilab/internal/sema"
	"compilab/internal/source"
	"compilab/internal/token"
	"compilab/internal/vm"
)

// SnapshotPayload is the tooling view of a session state.
type SnapshotPayload struct {
	Path    string           `json:"path" msgpack:"path"`
	Session string           `json:"session,omitempty" msgpack:"session,omitempty"`
	Buffer  BufferPayload    `json:"buffer" msgpack:"buffer"`
	Outcome string           `json:"outcome,omitempty" msgpack:"outcome,omitempty"`
	Error   string           `json:"error,omitempty" msgpack:"error,omitempty"`
	Summary pipeline.Summary `json:"summary" msgpack:"summary"`
	Stages  []StagePayload   `json:"stages" msgpack:"stages"`
	Timings *observ.Report   `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

type BufferPayload struct {
	Generation   uint64 `json:"generation" msgpack:"generation"`
	Dirty        bool   `json:"dirty" msgpack:"dirty"`
	Bytes        int    `json:"bytes" msgpack:"bytes"`
	CursorRow    int    `json:"cursor_row" msgpack:"cursor_row"`
	CursorColumn int    `json:"cursor_column" msgpack:"cursor_column"`
}

type StagePayload struct {
	Stage       string           `json:"stage" msgpack:"stage"`
	Status      string           `json:"status" msgpack:"status"`
	Generation  uint64           `json:"generation" msgpack:"generation"`
	ElapsedMS   float64          `json:"elapsed_ms" msgpack:"elapsed_ms"`
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Artifact    *ArtifactSummary `json:"artifact,omitempty" msgpack:"artifact,omitempty"`
}

// ArtifactSummary describes a stage artifact without embedding it.
type ArtifactSummary struct {
	Kind    string `json:"kind" msgpack:"kind"`
	Tokens  int    `json:"tokens,omitempty" msgpack:"tokens,omitempty"`
	Nodes   int    `json:"nodes,omitempty" msgpack:"nodes,omitempty"`
	Symbols int    `json:"symbols,omitempty" msgpack:"symbols,omitempty"`
	Output  string `json:"output,omitempty" msgpack:"output,omitempty"`
	Steps   int    `json:"steps,omitempty" msgpack:"steps,omitempty"`
	Exit    string `json:"exit,omitempty" msgpack:"exit,omitempty"`
}

// SummarizeArtifact reports what the artifact is; nil for unknown kinds.
func SummarizeArtifact(a any) *ArtifactSummary {
	switch v := a.(type) {
	case []token.Token:
		return &ArtifactSummary{Kind: "tokens", Tokens: len(v)}
	case *ast.Tree:
		if v == nil {
			return nil
		}
		return &ArtifactSummary{Kind: "syntax-tree", Nodes: ast.Count(v.Root)}
	case *sema.Tree:
		if v == nil {
			return nil
		}
		s := &ArtifactSummary{Kind: "annotated-tree", Nodes: ast.Count(v.Root)}
		if v.Symbols != nil {
			s.Symbols = v.Symbols.Len()
		}
		return s
	case vm.Output:
		s := &ArtifactSummary{Kind: "output", Output: v.Text, Steps: v.Steps}
		if v.Exit != nil {
			s.Exit = v.Exit.String()
		}
		return s
	}
	return nil
}

// BuildSnapshot converts a session snapshot. rep and timings may be nil.
func BuildSnapshot(path, session string, snap pipeline.Snapshot, file *source.File, rep *pipeline.RunReport, timings *observ.Report) SnapshotPayload {
	p := SnapshotPayload{
		Path:    path,
		Session: session,
		Buffer: BufferPayload{
			Generation:   snap.Buffer.Generation,
			Dirty:        snap.Buffer.Dirty,
			Bytes:        len(snap.Buffer.Text),
			CursorRow:    snap.Buffer.CursorRow,
			CursorColumn: snap.Buffer.CursorColumn,
		},
		Summary: snap.Summary(),
		Timings: timings,
	}
	if rep != nil {
		p.Outcome = rep.Outcome.String()
	}
	for _, r := range snap.Results {
		p.Stages = append(p.Stages, StagePayload{
			Stage:       r.Stage.String(),
			Status:      r.Status.String(),
			Generation:  r.Generation,
			ElapsedMS:   float64(r.Elapsed.Microseconds()) / 1000,
			Diagnostics: BuildDiagnosticsOutput(r.Diagnostics, file, JSONOpts{IncludeNotes: true}).Diagnostics,
			Artifact:    SummarizeArtifact(r.Artifact),
		})
	}
	return p
}

// EncodeSnapshot writes payload as JSON or MessagePack.
func EncodeSnapshot(w io.Writer, payload SnapshotPayload, format Format) error {
	switch format {
	case FormatJSON, FormatPretty:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(payload)
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}

// EncodeSnapshots writes several payloads; JSON gets a single array.
func EncodeSnapshots(w io.Writer, payloads []SnapshotPayload, format Format) error {
	switch format {
	case FormatJSON, FormatPretty:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payloads)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(payloads)
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}

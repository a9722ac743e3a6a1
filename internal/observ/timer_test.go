package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"compilab/internal/pipeline"
	"compilab/internal/stage"
)

func TestTimerRecordsStageEvents(t *testing.T) {
	tm := NewTimer()
	tm.OnEvent(pipeline.Event{Kind: pipeline.EventStageStarted, Stage: stage.Lexical})
	tm.OnEvent(pipeline.Event{Kind: pipeline.EventStageFinished, Stage: stage.Lexical, Status: pipeline.StatusSucceeded, Elapsed: 2 * time.Millisecond})
	tm.OnEvent(pipeline.Event{Kind: pipeline.EventStageFinished, Stage: stage.Syntax, Status: pipeline.StatusFailed, Elapsed: time.Millisecond, Diagnostics: 2})
	tm.OnEvent(pipeline.Event{Kind: pipeline.EventDiscarded, Stage: stage.Semantic})

	rep := tm.Report()
	require.Len(t, rep.Phases, 3)
	require.Equal(t, "lexical", rep.Phases[0].Name)
	require.InDelta(t, 2.0, rep.Phases[0].DurationMS, 1e-9)
	require.Equal(t, "failed, 2 diagnostics", rep.Phases[1].Note)
	require.Equal(t, "discarded", rep.Phases[2].Note)
	require.InDelta(t, 3.0, rep.TotalMS, 1e-9)
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "ok")
	tm.End(42, "ignored")

	sum := tm.Summary()
	require.True(t, strings.HasPrefix(sum, "timings:\n"))
	require.Contains(t, sum, "load")
	require.Contains(t, sum, "// ok")
	require.Contains(t, sum, "total")
}

func TestEmptyReport(t *testing.T) {
	require.Equal(t, Report{}, NewTimer().Report())
}

func TestTimerReset(t *testing.T) {
	tm := NewTimer()
	tm.Record("lexical", time.Millisecond, "")
	tm.Reset()
	require.Equal(t, Report{}, tm.Report())
	tm.Record("syntax", time.Millisecond, "")
	require.Len(t, tm.Report().Phases, 1)
}

package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"compilab/internal/pipeline"
	"compilab/internal/stage"
)

func feed(m tea.Model, evs ...pipeline.Event) tea.Model {
	for _, ev := range evs {
		m, _ = m.Update(eventMsg(ev))
	}
	return m
}

func TestStageModelTracksCurrentGeneration(t *testing.T) {
	ch := make(chan pipeline.Event)
	m := NewStageModel("prog.cl", stage.Semantic, ch)
	m = feed(m,
		pipeline.Event{Kind: pipeline.EventInvalidated, Generation: 1},
		pipeline.Event{Kind: pipeline.EventStageStarted, Stage: stage.Lexical, Generation: 1},
		pipeline.Event{Kind: pipeline.EventStageFinished, Stage: stage.Lexical, Status: pipeline.StatusSucceeded, Generation: 1, Elapsed: time.Millisecond},
		pipeline.Event{Kind: pipeline.EventStageStarted, Stage: stage.Syntax, Generation: 1},
	)
	sm := m.(*stageModel)
	require.Equal(t, uint64(1), sm.generation)
	require.Equal(t, pipeline.StatusSucceeded, sm.rows[stage.Lexical].status)
	require.Equal(t, pipeline.StatusRunning, sm.rows[stage.Syntax].status)
	require.InDelta(t, 1.0/3, sm.fraction(), 1e-9)

	view := m.View()
	require.Contains(t, view, "prog.cl (generation 1)")
	require.Contains(t, view, "succeeded")
	require.Contains(t, view, "running")
	require.NotContains(t, view, "execution")

	// событие старого поколения не трогает строки
	m = feed(m,
		pipeline.Event{Kind: pipeline.EventInvalidated, Generation: 2},
		pipeline.Event{Kind: pipeline.EventStageFinished, Stage: stage.Syntax, Status: pipeline.StatusFailed, Generation: 1},
		pipeline.Event{Kind: pipeline.EventDiscarded, Stage: stage.Syntax, Generation: 1},
	)
	sm = m.(*stageModel)
	require.Equal(t, pipeline.StatusPending, sm.rows[stage.Syntax].status)
	require.Equal(t, 1, sm.stale)
	require.Zero(t, sm.fraction())
	require.Contains(t, m.View(), "1 stale result(s) discarded")
}

func TestStageModelQuitsWhenEventsClose(t *testing.T) {
	ch := make(chan pipeline.Event)
	close(ch)
	m := NewStageModel("x", stage.Execution, ch)
	msg := m.(*stageModel).listenForEvent()()
	require.IsType(t, doneMsg{}, msg)

	m, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	require.True(t, m.(*stageModel).done)
	require.Contains(t, m.View(), "done: x")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 0))
	require.Equal(t, "abc", truncate("abc", 3))
	require.Equal(t, "ab", truncate("abcdef", 2))
	require.Equal(t, "a...", truncate("abcdef", 4))
	require.Equal(t, "日...", truncate("日本語日本語", 5))
}

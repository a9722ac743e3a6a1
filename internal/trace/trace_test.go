package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevelAndMode(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	require.Equal(t, LevelDetail, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)

	mode, err := ParseMode("both")
	require.NoError(t, err)
	require.Equal(t, ModeBoth, mode)

	_, err = ParseMode("disk")
	require.Error(t, err)
}

func TestShouldEmitByScope(t *testing.T) {
	require.False(t, LevelOff.ShouldEmit(ScopeSession))
	require.True(t, LevelPhase.ShouldEmit(ScopeRun))
	require.False(t, LevelPhase.ShouldEmit(ScopeStage))
	require.True(t, LevelDetail.ShouldEmit(ScopeStage))
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeRun, Name: name})
	}
	evs := r.Snapshot()
	require.Len(t, evs, 3)
	require.Equal(t, "c", evs[0].Name)
	require.Equal(t, "e", evs[2].Name)
	require.Less(t, evs[0].Seq, evs[2].Seq)
	require.Equal(t, uint64(2), r.Dropped())
	require.Zero(t, NewRingTracer(3, LevelDebug).Dropped())
}

func TestSpanEmitsBeginAndEnd(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	run := Begin(r, ScopeRun, "run", 0)
	st := Begin(r, ScopeStage, "stage:lexical", run.ID())
	st.WithExtra("status", "succeeded").End("")
	run.End("completed")

	evs := r.Snapshot()
	require.Len(t, evs, 4)
	require.Equal(t, KindSpanBegin, evs[0].Kind)
	require.Equal(t, run.ID(), evs[1].ParentID)
	require.Equal(t, "succeeded", evs[2].Extra["status"])
	require.Equal(t, "completed", evs[3].Detail)
}

func TestSpanBelowLevelIsSilent(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	sp := Begin(r, ScopeStage, "stage:syntax", 0)
	sp.WithExtra("k", "v").End("")
	require.Empty(t, r.Snapshot())
	require.Zero(t, sp.ID())
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(s, ScopeSession, "edit", 0, "", map[string]string{"generation": "2"})

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	require.Equal(t, "point", got["kind"])
	require.Equal(t, "session", got["scope"])
	require.Equal(t, "edit", got["name"])
}

func TestTextFormatSortsExtras(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindSpanEnd, Scope: ScopeStage, Name: "stage:semantic",
		Extra: map[string]string{"status": "failed", "diagnostics": "2"}}
	line := string(FormatEvent(ev, FormatText))
	require.True(t, strings.HasPrefix(line, "#000007 "))
	require.Contains(t, line, "{diagnostics=2, status=failed}")
}

func TestMultiFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	m.Emit(&Event{Kind: KindPoint, Scope: ScopeRun, Name: "x"})
	require.Len(t, a.Snapshot(), 1)
	require.Len(t, b.Snapshot(), 1)
	require.Same(t, a, RingOf(m))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	require.False(t, tr.Enabled())

	tr, err = New(Config{Level: LevelError, Mode: ModeStream})
	require.NoError(t, err)
	require.NotNil(t, RingOf(tr))
}

func TestContextCarrier(t *testing.T) {
	require.Equal(t, Nop, FromContext(context.Background()))
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	require.Same(t, r, FromContext(ctx))
}

func TestHeartbeatStops(t *testing.T) {
	r := NewRingTracer(64, LevelDebug)
	h := StartHeartbeat(r, time.Millisecond)
	require.NotNil(t, h)
	require.Eventually(t, func() bool { return len(r.Snapshot()) > 0 }, time.Second, time.Millisecond)
	h.Stop()
	h.Stop()
	require.Nil(t, StartHeartbeat(Nop, time.Millisecond))
}

package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"compilab/internal/driver"
	"compilab/internal/metrics"
	"compilab/internal/pipeline"
	"compilab/internal/stage"
)

func TestCollectorCountsSessionActivity(t *testing.T) {
	c := metrics.New()
	opts := driver.DefaultOptions()
	opts.Observers = []pipeline.Observer{c}
	sess, err := driver.NewSession(opts)
	require.NoError(t, err)

	sess.EditText("int a;\na = 1;\ncout a;\n")
	rep, err := sess.RunThrough(context.Background(), stage.Execution)
	require.NoError(t, err)
	c.ObserveRun(rep)

	sess.EditText("int a;\na = ;\n")
	rep, err = sess.RunThrough(context.Background(), stage.Execution)
	require.NoError(t, err)
	c.ObserveRun(rep)

	expected := `
# HELP compilab_pipeline_runs_total RunThrough calls by outcome
# TYPE compilab_pipeline_runs_total counter
compilab_pipeline_runs_total{outcome="completed"} 1
compilab_pipeline_runs_total{outcome="failed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "compilab_pipeline_runs_total"))

	reg := c.Registry()
	count, err := testutil.GatherAndCount(reg, "compilab_pipeline_stage_results_total")
	require.NoError(t, err)
	// execution/succeeded, lexical/succeeded, semantic/succeeded, syntax/succeeded, syntax/failed
	require.Equal(t, 5, count)

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP compilab_buffer_generation Current text generation of the observed session
# TYPE compilab_buffer_generation gauge
compilab_buffer_generation 2
# HELP compilab_buffer_edits_total Invalidations caused by text edits or new files
# TYPE compilab_buffer_edits_total counter
compilab_buffer_edits_total 2
`), "compilab_buffer_generation", "compilab_buffer_edits_total"))
}

func TestCollectorDiscarded(t *testing.T) {
	c := metrics.New()
	c.OnEvent(pipeline.Event{Kind: pipeline.EventDiscarded, Stage: stage.Syntax, Elapsed: time.Millisecond})
	c.OnEvent(pipeline.Event{Kind: pipeline.EventDiscarded, Stage: stage.Syntax})
	c.OnEvent(pipeline.Event{Kind: pipeline.EventSaved})

	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(`
# HELP compilab_pipeline_stale_results_total Stage results discarded because the text changed
# TYPE compilab_pipeline_stale_results_total counter
compilab_pipeline_stale_results_total{stage="syntax"} 2
`), "compilab_pipeline_stale_results_total"))
}

func TestHandler(t *testing.T) {
	c := metrics.New()
	c.ObserveRun(pipeline.RunReport{Outcome: pipeline.OutcomeSuperseded})

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `compilab_pipeline_runs_total{outcome="superseded"} 1`)
}

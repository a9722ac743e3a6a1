// Package metrics exports pipeline activity as Prometheus collectors.
//
// Collector is a pipeline.Observer: subscribe it to a session and it keeps
// per-stage counters, a duration histogram and the current generation.
// Run outcomes come from RunReports and are fed in by whoever drives
// RunThrough (see ObserveRun).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"compilab/internal/pipeline"
)

const namespace = "compilab"

// Collector owns its registry so several sessions or tests never clash on
// the global one.
type Collector struct {
	reg *prometheus.Registry

	runs       *prometheus.CounterVec
	results    *prometheus.CounterVec
	discarded  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	generation prometheus.Gauge
	edits      prometheus.Counter
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		reg: reg,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "RunThrough calls by outcome",
		}, []string{"outcome"}),
		results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_results_total",
			Help:      "Committed stage results by stage and status",
		}, []string{"stage", "status"}),
		discarded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stale_results_total",
			Help:      "Stage results discarded because the text changed",
		}, []string{"stage"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Analyzer wall time per stage",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		generation: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "generation",
			Help:      "Current text generation of the observed session",
		}),
		edits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "edits_total",
			Help:      "Invalidations caused by text edits or new files",
		}),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) OnEvent(ev pipeline.Event) {
	switch ev.Kind {
	case pipeline.EventInvalidated, pipeline.EventReset:
		c.edits.Inc()
		c.generation.Set(float64(ev.Generation))
	case pipeline.EventStageFinished:
		st := ev.Stage.String()
		c.results.WithLabelValues(st, ev.Status.String()).Inc()
		c.duration.WithLabelValues(st).Observe(ev.Elapsed.Seconds())
	case pipeline.EventDiscarded:
		c.discarded.WithLabelValues(ev.Stage.String()).Inc()
	}
}

// ObserveRun counts a finished RunThrough call.
func (c *Collector) ObserveRun(rep pipeline.RunReport) {
	c.runs.WithLabelValues(rep.Outcome.String()).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}

// Package metrics exports search activity as Prometheus metrics. A *Metrics is
// an astar.Observer and is safe to share between engines.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/gridastar/astar"
)

// Namespace prefixes every metric name.
const Namespace = "gridastar"

// Metrics holds the collectors registered for one registry.
type Metrics struct {
	steps        prometheus.Counter
	pushed       prometheus.Counter
	updated      prometheus.Counter
	stepDuration prometheus.Histogram
	openSize     prometheus.Gauge
	searches     *prometheus.CounterVec
	searchSteps  prometheus.Histogram
	errs         *prometheus.CounterVec
	sessions     prometheus.Counter
}

// New registers the collectors on reg. A nil reg registers nowhere, which is
// handy in tests that only read values back with testutil.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		steps: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "steps_total",
			Help:      "Total successful search steps",
		}),
		pushed: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_pushed_total",
			Help:      "Nodes added to an open set",
		}),
		updated: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_updated_total",
			Help:      "Open nodes whose cost was lowered (decrease-key)",
		}),
		stepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one search step",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
		}),
		openSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "open_set_size",
			Help:      "Open set size after the most recent step",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Finished searches by terminal state",
		}, []string{"state"}),
		searchSteps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_steps",
			Help:      "Steps taken by a finished search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		errs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Search errors by kind",
		}, []string{"kind"}),
		sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions created through the HTTP API",
		}),
	}
}

// OnStep implements astar.Observer.
func (m *Metrics) OnStep(ev astar.StepEvent) {
	m.steps.Inc()
	m.pushed.Add(float64(ev.Pushed))
	m.updated.Add(float64(ev.Updated))
	m.stepDuration.Observe(ev.Duration.Seconds())
	m.openSize.Set(float64(ev.Open))
}

// OnTerminal implements astar.Observer.
func (m *Metrics) OnTerminal(state astar.State, steps int) {
	m.searches.WithLabelValues(state.String()).Inc()
	m.searchSteps.Observe(float64(steps))
}

// OnError implements astar.Observer.
func (m *Metrics) OnError(err error) {
	m.errs.WithLabelValues(ErrorKind(err)).Inc()
}

// SessionCreated counts one new HTTP session.
func (m *Metrics) SessionCreated() { m.sessions.Inc() }

// ErrorKind maps an engine error to a low-cardinality label value.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, astar.ErrInconsistentHeuristic):
		return "inconsistent_heuristic"
	case errors.Is(err, astar.ErrInvariant):
		return "invariant"
	case errors.Is(err, astar.ErrConfig):
		return "config"
	case errors.Is(err, astar.ErrAlgorithmFinished):
		return "finished"
	default:
		return "other"
	}
}

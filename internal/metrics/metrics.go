// Package metrics exposes BitHub's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reassignment outcomes.
const (
	OutcomeLinked    = "linked"
	OutcomeNameOnly  = "name_only"
	OutcomeRejected  = "rejected"
	OutcomeAmbiguous = "ambiguous"
)

// Metrics holds the collectors the services update.
type Metrics struct {
	BitsCreated      prometheus.Counter
	Ratings          prometheus.Counter
	Reassignments    *prometheus.CounterVec
	MutationFailures *prometheus.CounterVec
	BoardRecompute   prometheus.Histogram
	Watchers         prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		BitsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bithub_bits_created_total",
			Help: "Bits submitted.",
		}),
		Ratings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bithub_ratings_total",
			Help: "Rating writes, including re-ratings.",
		}),
		Reassignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bithub_reassignments_total",
			Help: "Owner reassignments by outcome.",
		}, []string{"outcome"}),
		MutationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bithub_mutation_failures_total",
			Help: "Store writes that failed, by operation.",
		}, []string{"op"}),
		BoardRecompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bithub_board_recompute_seconds",
			Help:    "Time to load a snapshot and recompute the board.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Watchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bithub_board_watchers",
			Help: "Open WatchBoard streams.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.BitsCreated,
		m.Ratings,
		m.Reassignments,
		m.MutationFailures,
		m.BoardRecompute,
		m.Watchers,
	)
	return m
}

// ObserveRecompute records the time since start as one board recompute.
func (m *Metrics) ObserveRecompute(start time.Time) {
	m.BoardRecompute.Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

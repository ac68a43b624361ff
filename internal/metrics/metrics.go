// Package metrics exposes quote collection and sync counters in the
// Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quotekeeper"

// QuoteCounter reports the size of the quote collection.
type QuoteCounter interface {
	Len() int
}

// StatusRecorder persists the outcome of a sync. settingsstore.SettingsStore
// satisfies it.
type StatusRecorder interface {
	SetQuoteSyncStatus(status, message string, merged int) error
}

// Metrics owns a private registry so tests and multiple instances do not
// collide on the global one.
type Metrics struct {
	registry    *prometheus.Registry
	syncRuns    *prometheus.CounterVec
	syncedTotal prometheus.Counter
}

// New registers runtime collectors and a gauge over quotes.
func New(quotes QuoteCounter) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Quote sync rounds by outcome.",
		}, []string{"status"}),
		syncedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synced_quotes_total",
			Help:      "Quotes appended from the remote endpoint.",
		}),
	}
	registry.MustRegister(m.syncRuns, m.syncedTotal)

	if quotes != nil {
		registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quotes",
			Help:      "Quotes in the collection.",
		}, func() float64 { return float64(quotes.Len()) }))
	}

	return m
}

// Handler serves the registry. Use it with gin.WrapH.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordSync counts one finished sync round.
func (m *Metrics) RecordSync(status string, merged int) {
	m.syncRuns.WithLabelValues(status).Inc()
	if merged > 0 {
		m.syncedTotal.Add(float64(merged))
	}
}

// WrapStatusRecorder counts every sync outcome written through next.
// next may be nil, in which case outcomes are only counted.
func (m *Metrics) WrapStatusRecorder(next StatusRecorder) StatusRecorder {
	return &countingRecorder{metrics: m, next: next}
}

type countingRecorder struct {
	metrics *Metrics
	next    StatusRecorder
}

func (r *countingRecorder) SetQuoteSyncStatus(status, message string, merged int) error {
	r.metrics.RecordSync(status, merged)
	if r.next == nil {
		return nil
	}
	return r.next.SetQuoteSyncStatus(status, message, merged)
}

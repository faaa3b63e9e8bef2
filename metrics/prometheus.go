// Package metrics records per-query chat metrics and exposes
// Prometheus collectors for the land-bank pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	rewriteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "landbank_query_rewrite_latency_ms",
		Help:    "Latency of the query rewrite pipeline in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50},
	})

	retrieverLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "landbank_retriever_latency_ms",
		Help:    "Latency of retriever calls in milliseconds",
		Buckets: []float64{10, 25, 50, 75, 100, 150, 200, 300, 500, 800, 1200},
	}, []string{"type"})

	retrieverResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "landbank_retriever_results",
		Help:    "Number of results returned by a retriever",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"type"})

	queryImprovements = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "landbank_query_improvements",
		Help:    "Number of context terms appended per rewritten query",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 8, 12},
	})

	regionalLanguage = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landbank_regional_language_total",
		Help: "Queries classified for regional-language answers",
	}, []string{"regional"})

	rewriteCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landbank_rewrite_cache_total",
		Help: "Rewrite cache lookups by outcome",
	}, []string{"outcome"})

	greetings = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landbank_greeting_shortcut_total",
		Help: "Chat requests answered by the greeting shortcut",
	})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(
			rewriteLatency, retrieverLatency, retrieverResults,
			queryImprovements, regionalLanguage, rewriteCacheHits, greetings,
		)
	})
}

// ObserveRewrite records rewrite latency and the number of appended
// improvements.
func ObserveRewrite(start time.Time, improvements int) {
	ensureRegistered()
	rewriteLatency.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	queryImprovements.Observe(float64(improvements))
}

// ObserveRetriever records latency and result size for a retriever type.
func ObserveRetriever(typ string, start time.Time, results int) {
	ensureRegistered()
	retrieverLatency.WithLabelValues(typ).Observe(float64(time.Since(start).Milliseconds()))
	retrieverResults.WithLabelValues(typ).Observe(float64(results))
}

// IncRegionalLanguage counts a language-classifier decision.
func IncRegionalLanguage(regional bool) {
	ensureRegistered()
	label := "false"
	if regional {
		label = "true"
	}
	regionalLanguage.WithLabelValues(label).Inc()
}

// IncRewriteCache counts a rewrite cache lookup.
func IncRewriteCache(hit bool) {
	ensureRegistered()
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	rewriteCacheHits.WithLabelValues(outcome).Inc()
}

// IncGreeting counts a greeting-shortcut answer.
func IncGreeting() {
	ensureRegistered()
	greetings.Inc()
}

// Collectors exposes all collectors for registration with a custom
// registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		rewriteLatency, retrieverLatency, retrieverResults,
		queryImprovements, regionalLanguage, rewriteCacheHits, greetings,
	}
}

// Handler serves the pipeline collectors for Prometheus scrapes. It
// uses a dedicated registry so only landbank metrics appear.
func Handler() http.Handler {
	ensureRegistered()
	reg := prometheus.NewRegistry()
	reg.MustRegister(Collectors()...)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Package metrics provides the centralized Prometheus metrics registry for
// the parlay engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GenerationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "generation_runs_total",
		Help:      "Total number of generation runs",
	})
	GenerationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "generation_failures_total",
		Help:      "Total number of generation runs that failed on repository access",
	})
	CombinationsExaminedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "combinations_examined_total",
		Help:      "Total number of candidate combinations examined",
	})
	CombinationsAcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "combinations_accepted_total",
		Help:      "Total number of combinations that passed edge and probability thresholds",
	})
	CombinationsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "combinations_rejected_total",
		Help:      "Total number of combinations rejected by thresholds",
	})
	ParlaysGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "parlays_generated_total",
		Help:      "Total number of ranked parlays returned across runs",
	})
	ParlaysPersistedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "parlays_persisted_total",
		Help:      "Total number of parlays written to storage",
	})
	OddsEnrichmentFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "odds_enrichment_failures_total",
		Help:      "Total number of failed market-odds enrichment calls",
	})
	ResultCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlay_engine",
		Name:      "result_cache_hits_total",
		Help:      "Total number of generation requests served from the result cache",
	})
)

// Gauge metrics
var (
	PoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "parlay_engine",
		Name:      "candidate_pool_size",
		Help:      "Candidate leg pool size of the most recent run",
	})
	LastRunParlays = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "parlay_engine",
		Name:      "last_run_parlays",
		Help:      "Number of parlays produced by the most recent run",
	})
)

// Histogram metrics
var (
	GenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "parlay_engine",
		Name:      "generation_duration_seconds",
		Help:      "Duration of full generation runs in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})
	LegFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "parlay_engine",
		Name:      "leg_fetch_duration_seconds",
		Help:      "Duration of candidate leg repository reads in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GenerationRunsTotal)
		registry.MustRegister(GenerationFailuresTotal)
		registry.MustRegister(CombinationsExaminedTotal)
		registry.MustRegister(CombinationsAcceptedTotal)
		registry.MustRegister(CombinationsRejectedTotal)
		registry.MustRegister(ParlaysGeneratedTotal)
		registry.MustRegister(ParlaysPersistedTotal)
		registry.MustRegister(OddsEnrichmentFailuresTotal)
		registry.MustRegister(ResultCacheHitsTotal)

		registry.MustRegister(PoolSize)
		registry.MustRegister(LastRunParlays)

		registry.MustRegister(GenerationDuration)
		registry.MustRegister(LegFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

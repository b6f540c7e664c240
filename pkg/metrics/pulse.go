package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulse_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation lists served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pulse_recommend_requests_total",
		Help: "Total number of recommendation requests served",
	})

	TrendingCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_trending_cache_lookups_total",
			Help: "Trending cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	EnrichedEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_enriched_events_total",
			Help: "Events processed by tag enrichment, by outcome.",
		},
		[]string{"outcome"},
	)

	ProfileRebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_profile_rebuilds_total",
			Help: "Taste profile recomputations, by outcome.",
		},
		[]string{"outcome"},
	)

	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_interactions_total",
			Help: "Recorded user-event interactions by type.",
		},
		[]string{"type"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		TrendingCacheLookups,
		EnrichedEventsTotal,
		ProfileRebuildsTotal,
		InteractionsTotal,
	)
}

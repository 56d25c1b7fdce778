package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealersearch",
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2.5},
		},
		[]string{"scope"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealersearch",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealersearch",
			Name:      "upstream_errors_total",
			Help:      "Upstream source failures by source",
		},
		[]string{"source"}, // "vehicles" / "parts"
	)

	RecommendationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealersearch",
			Name:      "recommendation_cache_total",
			Help:      "Fitment recommendation cache hits and misses",
		},
		[]string{"direction", "result"}, // direction: "parts" / "vehicles"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(RecommendationCacheTotal)
	searchMetricsRegistered = true
}

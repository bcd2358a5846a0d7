package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full recommendation computation, data load included
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of recommendation computation",
		Buckets: prometheus.DefBuckets,
	})

	// Recommendations served, by the strategy that produced them
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendations served by source",
	}, []string{"source"})

	// Strategies that were attempted and produced nothing
	StrategyFallthrough = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_strategy_fallthrough_total",
		Help: "How many times a strategy yielded no candidates",
	}, []string{"strategy"})

	// Data loads that failed and were treated as empty
	DataLoadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_data_load_failures_total",
		Help: "Failed interaction/product loads",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		StrategyFallthrough,
		DataLoadFailures,
	)
}

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HarmonyChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harmony_checks_total",
			Help: "Total number of harmony calculations",
		},
		[]string{"transport"},
	)

	HarmonyScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harmony_score",
			Help:    "Distribution of overall harmony scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	MergesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_merges_total",
			Help: "Total number of token merge operations",
		},
		[]string{"status"},
	)

	OverridesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_merge_overrides_failed_total",
			Help: "Total number of overrides that failed in non-strict merges",
		},
	)

	MergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "token_merge_duration_seconds",
			Help: "Duration of merge operations in seconds",
		},
	)
)

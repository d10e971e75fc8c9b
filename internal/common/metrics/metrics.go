// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubscriptionDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_subscription_deliveries_total",
			Help: "Total subscription deliveries by binding and outcome",
		},
		[]string{"binding", "outcome"},
	)

	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_mutations_total",
			Help: "Total record mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	MutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "record_mutation_duration_seconds",
			Help: "Duration of record mutations in seconds",
		},
		[]string{"operation"},
	)

	IntakeSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_sessions_active",
			Help: "Number of live intake wizard sessions",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_cache_lookups_total",
			Help: "Record cache lookups by record kind and result",
		},
		[]string{"kind", "result"},
	)
)

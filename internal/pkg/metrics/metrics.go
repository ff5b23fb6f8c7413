// Package metrics holds the process wide prometheus collectors of the factory service.
// Collectors are registered on the default registry and served by the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "factory"

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

var (
	downstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "downstream",
			Name:      "calls_total",
			Help:      "Best effort calls to collaborators by target and outcome",
		},
		[]string{"target", "outcome"},
	)

	downstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "downstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to collaborators",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"target"},
	)

	orderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Committed order status transitions by order type and target status",
		},
		[]string{"order_type", "status"},
	)

	propagationHopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "propagation",
			Name:      "hops_total",
			Help:      "Completion propagation hops by level and result",
		},
		[]string{"level", "result"},
	)

	reconciledOrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "reconciled_orders_total",
			Help:      "Orders revisited by the reconciliation job",
		},
		[]string{"order_type", "outcome"},
	)
)

func RecordDownstreamCall(target string, err error, duration time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	downstreamCallsTotal.WithLabelValues(target, outcome).Inc()
	downstreamCallDuration.WithLabelValues(target).Observe(duration.Seconds())
}

func RecordTransition(orderType, status string) {
	orderTransitionsTotal.WithLabelValues(orderType, status).Inc()
}

// RecordPropagationHop counts one level of the upward cascade. result is one of
// "completed", "incomplete", "skipped" or "failed".
func RecordPropagationHop(level, result string) {
	propagationHopsTotal.WithLabelValues(level, result).Inc()
}

func RecordReconciled(orderType string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	reconciledOrdersTotal.WithLabelValues(orderType, outcome).Inc()
}

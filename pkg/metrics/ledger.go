package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded by the inventory ledger.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeNotFound     = "not_found"
	OutcomeInsufficient = "insufficient"
	OutcomeError        = "error"
)

// LedgerMetrics records latency and outcomes of inventory operations.
type LedgerMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	units    *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_operation_duration_seconds",
		Help:    "Duration of inventory ledger operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_operation_total",
		Help: "Inventory ledger operations by outcome.",
	}, []string{"operation", "outcome"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_units_deducted_total",
		Help: "Units removed from stock by committed deductions.",
	}, []string{"operation"})
	reg.MustRegister(duration, outcomes, units)
	return &LedgerMetrics{
		duration: duration,
		outcomes: outcomes,
		units:    units,
	}
}

// Observe records the duration and outcome for the named operation.
func (m *LedgerMetrics) Observe(operation, outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	m.outcomes.WithLabelValues(op, normalizeLabel(outcome)).Inc()
}

// AddUnits counts units deducted by a committed operation.
func (m *LedgerMetrics) AddUnits(operation string, units int) {
	if m == nil || m.units == nil || units <= 0 {
		return
	}
	m.units.WithLabelValues(normalizeLabel(operation)).Add(float64(units))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// Package metrics provides Prometheus collectors for the service's dependencies.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// StoreMetrics records per-operation counts and latencies for a backing store.
// A nil *StoreMetrics is valid and records nothing.
type StoreMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewStoreMetrics creates and registers collectors named
// proverbs_<store>_operations_total and proverbs_<store>_operation_duration_seconds.
// Registering the same store twice on one registerer reuses the existing collectors.
func NewStoreMetrics(reg prometheus.Registerer, store string) (*StoreMetrics, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "proverbs",
		Subsystem: store,
		Name:      "operations_total",
		Help:      "Store operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "proverbs",
		Subsystem: store,
		Name:      "operation_duration_seconds",
		Help:      "Store operation latency.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation"})

	var err error

	operations, err = register(reg, operations)
	if err != nil {
		return nil, err
	}

	duration, err = register(reg, duration)
	if err != nil {
		return nil, err
	}

	return &StoreMetrics{operations: operations, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

// Observe records one operation that started at start.
func (m *StoreMetrics) Observe(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

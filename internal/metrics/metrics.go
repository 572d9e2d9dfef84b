// Package metrics exposes the engines' prometheus collectors
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "herdbook"

// Metrics holds the engine collectors. A nil *Metrics records nothing.
type Metrics struct {
	weighings         *prometheus.CounterVec
	migrations        *prometheus.CounterVec
	migrationDuration *prometheus.HistogramVec
	reconciled        prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		weighings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weighings_total",
			Help:      "Weighing sessions recorded, by outcome.",
		}, []string{"outcome"}),
		migrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migrations_total",
			Help:      "Explode and fold migrations, by direction and terminal status.",
		}, []string{"direction", "status"}),
		migrationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "migration_duration_seconds",
			Help:      "Wall time of explode and fold migrations.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"direction"}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciled_migrations_total",
			Help:      "Stale in_progress migration records marked failed by the reconciler.",
		}),
	}
	reg.MustRegister(m.weighings, m.migrations, m.migrationDuration, m.reconciled)
	return m
}

// ObserveWeighing counts one weighing call
func (m *Metrics) ObserveWeighing(outcome string) {
	if m == nil {
		return
	}
	m.weighings.WithLabelValues(outcome).Inc()
}

// ObserveMigration counts one migration and records its duration
func (m *Metrics) ObserveMigration(direction, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.migrations.WithLabelValues(direction, status).Inc()
	m.migrationDuration.WithLabelValues(direction).Observe(elapsed.Seconds())
}

// ObserveReconciled counts records marked failed by the reconciler
func (m *Metrics) ObserveReconciled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciled.Add(float64(n))
}

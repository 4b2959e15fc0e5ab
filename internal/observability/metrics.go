// Package observability описывает метрики Prometheus сервиса.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "safety_heatmap"

// Metrics - счетчики, гистограммы и gauge расчета риска
type Metrics struct {
	VotesCast          *prometheus.CounterVec // метки: outcome={accepted,duplicate,rejected}
	StatusTransitions  *prometheus.CounterVec // метки: status
	CellRecomputes     *prometheus.CounterVec // метки: outcome={success,error}
	RebalanceDuration  prometheus.Histogram
	RebalanceCells     prometheus.Gauge
	NeighborhoodUpdate *prometheus.CounterVec // метки: outcome={success,error}
	ReconcileOutcomes  *prometheus.CounterVec // метки: outcome={created,corroborated,duplicate,skipped,error}
	DispatcherDropped  prometheus.Counter
	DispatcherQueued   prometheus.Gauge
}

// NewMetrics создает метрики и регистрирует их в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.VotesCast,
		m.StatusTransitions,
		m.CellRecomputes,
		m.RebalanceDuration,
		m.RebalanceCells,
		m.NeighborhoodUpdate,
		m.ReconcileOutcomes,
		m.DispatcherDropped,
		m.DispatcherQueued,
	)
	return m
}

// NewMetricsForTesting создает незарегистрированные метрики для тестов
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Validator votes by outcome.",
		}, []string{"outcome"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Incident status transitions by target status.",
		}, []string{"status"}),
		CellRecomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cell_recomputes_total",
			Help:      "Heat cell recomputes by outcome.",
		}, []string{"outcome"}),
		RebalanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebalance_duration_seconds",
			Help:      "Duration of a global color rebalance.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RebalanceCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rebalance_cells",
			Help:      "Nonzero cells considered by the last rebalance.",
		}),
		NeighborhoodUpdate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "neighborhood_recomputes_total",
			Help:      "Neighborhood rollup recomputes by outcome.",
		}, []string{"outcome"}),
		ReconcileOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_reconcile_total",
			Help:      "News reconciliation results by outcome.",
		}, []string{"outcome"}),
		DispatcherDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_tasks_dropped_total",
			Help:      "Aggregation tasks dropped because the queue was full.",
		}),
		DispatcherQueued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregation_tasks_queued",
			Help:      "Aggregation tasks waiting for a worker.",
		}),
	}
}

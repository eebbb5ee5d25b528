package planner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "oraidex_planner"

// Metrics are the planner's prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	plans          *prometheus.CounterVec
	paths          *prometheus.CounterVec
	minimumReceive *prometheus.CounterVec
	planDuration   prometheus.Histogram
}

// NewMetrics registers the planner collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		plans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plans_total",
			Help:      "Routes lowered into messages, by result",
		}, []string{"result"}),
		paths: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "paths_total",
			Help:      "Paths lowered into messages, by chain kind and shape",
		}, []string{"kind", "shape"}),
		minimumReceive: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "minimum_receive_total",
			Help:      "Where the minimum receive of a swapping path came from",
		}, []string{"source"}),
		planDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent lowering a route",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

func (m *Metrics) observePlan(start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.plans.WithLabelValues(result).Inc()
	m.planDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) observePath(kind ChainKind, shape string) {
	if m == nil {
		return
	}
	m.paths.WithLabelValues(string(kind), shape).Inc()
}

func (m *Metrics) observeMinimumReceive(source minimumSource) {
	if m == nil || source == sourceNone {
		return
	}
	m.minimumReceive.WithLabelValues(string(source)).Inc()
}

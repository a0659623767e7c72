// Package metrics exposes Prometheus metrics for interaction recording.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons used as label values.
const (
	ReasonInvalid            = "invalid"
	ReasonUserNotFound       = "user_not_found"
	ReasonProductNotFound    = "product_not_found"
	ReasonUserUnavailable    = "user_unavailable"
	ReasonProductUnavailable = "product_unavailable"
)

type Metrics struct {
	ExistenceChecksTotal   *prometheus.CounterVec   // by target (user, product) and outcome
	ExistenceCheckDuration *prometheus.HistogramVec // by target
	InteractionsCreated    prometheus.Counter
	InteractionsRejected   *prometheus.CounterVec // by reason
	EventPublishFailures   prometheus.Counter
}

// New registers the metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExistenceChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recom_existence_checks_total",
			Help: "Remote existence checks by target service and outcome",
		}, []string{"target", "outcome"}),

		ExistenceCheckDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recom_existence_check_duration_seconds",
			Help:    "Latency of remote existence checks by target service",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"target"}),

		InteractionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recom_interactions_created_total",
			Help: "Interactions persisted after both references were found",
		}),

		InteractionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recom_interactions_rejected_total",
			Help: "Interactions rejected before persistence by reason",
		}, []string{"reason"}),

		EventPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "recom_interaction_event_publish_failures_total",
			Help: "interaction.recorded events that could not be handed to the producer",
		}),
	}
}

func (m *Metrics) ObserveCheck(target, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.ExistenceChecksTotal.WithLabelValues(target, outcome).Inc()
	m.ExistenceCheckDuration.WithLabelValues(target).Observe(durationSeconds)
}

func (m *Metrics) IncCreated() {
	if m == nil {
		return
	}
	m.InteractionsCreated.Inc()
}

func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.InteractionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

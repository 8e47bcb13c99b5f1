package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RegistrationsStarted   prometheus.Counter
	RegistrationsCompleted prometheus.Counter
	StepValidationFailures *prometheus.CounterVec
	RemoteRequestDuration  *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer. Tests pass a
// private registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetgate_registrations_started_total",
			Help: "Registration wizard sessions started.",
		}),
		RegistrationsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetgate_registrations_completed_total",
			Help: "Registration submissions accepted by the platform API.",
		}),
		StepValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_step_validation_failures_total",
			Help: "Wizard step validations that failed, by step.",
		}, []string{"step"}),
		RemoteRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetgate_remote_request_duration_seconds",
			Help:    "Latency of calls to the platform API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}
}

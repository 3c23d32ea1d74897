package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	BookingOutcomeCreated   = "created"
	BookingOutcomeConflict  = "conflict"
	BookingOutcomeContended = "contended"
	BookingOutcomeFailed    = "failed"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec

	// Appointment metrics
	BookingOutcomes        *prometheus.CounterVec
	StatusTransitions      *prometheus.CounterVec
	AppointmentsCompleted  prometheus.Counter
	CompletionRunFailures  prometheus.Counter
	MediaCleanupFailures   *prometheus.CounterVec
	DoctorCacheLookups     *prometheus.CounterVec
	NotificationsPublished *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on registerer.
func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "booking_outcomes_total",
			Help:      "Appointment booking attempts by outcome",
		}, []string{"outcome"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "status_transitions_total",
			Help:      "Appointment status transitions",
		}, []string{"from", "to"}),
		AppointmentsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "auto_completed_total",
			Help:      "Confirmed appointments completed by the completion worker",
		}),
		CompletionRunFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "completion_run_failures_total",
			Help:      "Completion worker runs that ended with an error",
		}),
		MediaCleanupFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "cleanup_failures_total",
			Help:      "Best-effort image deletions that failed",
		}, []string{"resource"}),
		DoctorCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "doctors",
			Name:      "cache_lookups_total",
			Help:      "Doctor list cache lookups by result",
		}, []string{"result"}),
		NotificationsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "published_total",
			Help:      "E-mail notifications handed to the mailer queue",
		}, []string{"status"}),
	}
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveCompletion(completed int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CompletionRunFailures.Inc()
	}
	m.AppointmentsCompleted.Add(float64(completed))
}

func (m *Metrics) ObserveMediaCleanupFailure(resource string) {
	if m == nil {
		return
	}
	m.MediaCleanupFailures.WithLabelValues(resource).Inc()
}

func (m *Metrics) ObserveDoctorCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.DoctorCacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveNotification(err error) {
	if m == nil {
		return
	}
	status := "published"
	if err != nil {
		status = "failed"
	}
	m.NotificationsPublished.WithLabelValues(status).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// BookingMetrics counts orchestrator outcomes. A nil *BookingMetrics is a
// valid no-op recorder.
type BookingMetrics struct {
	bookings     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	availability *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Booking submissions by operation and outcome code",
		}, []string{"operation", "result", "code"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "status_transitions_total",
			Help:      "Status actions by action and result",
		}, []string{"action", "result"}),
		availability: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "availability_checks_total",
			Help:      "Availability checks by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "booking_duration_seconds",
			Help:      "Time spent processing a booking submission",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookings, m.transitions, m.availability, m.duration)
	return m
}

func (m *BookingMetrics) ObserveBooking(operation, result, code string, seconds float64) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(operation, result, code).Inc()
	m.duration.WithLabelValues(operation).Observe(seconds)
}

func (m *BookingMetrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result).Inc()
}

func (m *BookingMetrics) ObserveAvailability(available bool) {
	if m == nil {
		return
	}
	label := "available"
	if !available {
		label = "conflict"
	}
	m.availability.WithLabelValues(label).Inc()
}

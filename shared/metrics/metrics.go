package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hotel"

var (
	once sync.Once

	bookingTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transition_total",
			Help:      "Count of booking status writes by resulting status.",
		},
		[]string{"status"},
	)

	availabilityChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_availability_changed_total",
			Help:      "Count of stored availability flags rewritten, by new value.",
		},
		[]string{"available"},
	)

	reconcileMismatch = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_mismatch_total",
			Help:      "Count of rooms whose stored flag disagreed with its bookings during a sweep.",
		},
		[]string{"mode"},
	)

	checkInQuote = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkin_quote_total",
			Help:      "Count of guest check-in quotes by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingTransition, availabilityChanged, reconcileMismatch, checkInQuote)
	})
}

func IncBookingTransition(status string) {
	bookingTransition.WithLabelValues(status).Inc()
}

func IncAvailabilityChanged(available bool) {
	label := "false"
	if available {
		label = "true"
	}

	availabilityChanged.WithLabelValues(label).Inc()
}

func AddReconcileMismatch(mode string, count int) {
	reconcileMismatch.WithLabelValues(mode).Add(float64(count))
}

func IncCheckInQuote(outcome string) {
	checkInQuote.WithLabelValues(outcome).Inc()
}

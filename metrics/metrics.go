package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	BookingsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "bookings_created_total",
		Help:      "Bookings created, labeled by the status they settled in.",
	}, []string{"status"})

	BookingsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "bookings_cancelled_total",
		Help:      "Bookings cancelled by their teacher.",
	})

	DispatcherDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "dispatcher_decisions_total",
		Help:      "Manual dispatcher decisions on bookings.",
	}, []string{"decision"})

	BookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "booking_conflicts_total",
		Help:      "Booking attempts refused because the slot was taken.",
	})

	DocumentsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "documents_generated_total",
		Help:      "Confirmation documents generated, labeled by outcome.",
	}, []string{"result"})
)

var registerOnce sync.Once

// Register installs the collectors into the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BookingsCreated,
			BookingsCancelled,
			DispatcherDecisions,
			BookingConflicts,
			DocumentsGenerated,
		)
	})
}

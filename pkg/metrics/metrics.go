package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduling metrics
	SlotQueries        prometheus.Counter
	AvailabilitySaves  prometheus.Counter
	AvailabilityErrors prometheus.Counter

	// Booking metrics
	BookingsCreated    *prometheus.CounterVec
	BookingConflicts   prometheus.Counter
	BookingTransitions *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SlotQueries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Total number of available-slot queries served",
		}),
		AvailabilitySaves: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_saves_total",
			Help:      "Total number of successful availability replacements",
		}),
		AvailabilityErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_save_errors_total",
			Help:      "Total number of rejected or failed availability saves",
		}),
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings created, by clinic",
		}, []string{"clinic_id"}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of booking attempts rejected for overlap",
		}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_transitions_total",
			Help:      "Total number of booking status transitions, by target status",
		}, []string{"status"}),
	}
}

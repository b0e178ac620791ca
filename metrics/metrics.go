// File: metrics/metrics.go
package metrics

import (
	"context"

	"flexispace/models"
	"flexispace/services/transaction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingConfirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_confirmations_total",
			Help: "Booking confirmation attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_amount_minor_units",
			Help:    "Total price of confirmed bookings in minor currency units",
			Buckets: prometheus.ExponentialBuckets(100_000, 2, 12),
		},
	)

	ListingSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_submissions_total",
			Help: "Listings submitted for review",
		},
	)

	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Wizard navigation attempts",
		},
		[]string{"flow", "direction", "result"},
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_reminders_total",
			Help: "Booking reminders by stage",
		},
		[]string{"stage"},
	)
)

// ObserveTransition records one Next/Back/GoTo call.
func ObserveTransition(flow, direction string, moved bool) {
	result := "moved"
	if !moved {
		result = "blocked"
	}
	WizardTransitions.WithLabelValues(flow, direction, result).Inc()
}

// ConfirmationObserver feeds confirmation outcomes into the booking metrics.
type ConfirmationObserver struct{}

func (ConfirmationObserver) BookingConfirmed(ctx context.Context, record models.BookingRecord) {
	BookingConfirmations.WithLabelValues("confirmed").Inc()
	BookingAmount.Observe(float64(record.Amount))
}

func (ConfirmationObserver) ConfirmationFailed(ctx context.Context, err *transaction.ConfirmationError) {
	BookingConfirmations.WithLabelValues(string(err.Reason)).Inc()
}

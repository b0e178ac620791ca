package recordsRepo

import (
	"context"

	"flexispace/models"
)

// BookingsKey is the store key holding the JSON list of confirmed bookings.
const BookingsKey = "bookings"

// BookingRecordRepository stores confirmed bookings, newest first.
type BookingRecordRepository interface {
	List(ctx context.Context) ([]models.BookingRecord, error)
	Append(ctx context.Context, record models.BookingRecord) error
}

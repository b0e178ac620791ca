package recordsRepo

import (
	"context"

	"flexispace/database/kv"
	"flexispace/models"
)

type kvRecordRepo struct {
	list *kv.JSONList[models.BookingRecord]
}

// NewKVRecordRepo keeps bookings as one JSON array under BookingsKey.
func NewKVRecordRepo(store kv.Store) BookingRecordRepository {
	return &kvRecordRepo{list: kv.NewJSONList[models.BookingRecord](store, BookingsKey)}
}

func (r *kvRecordRepo) List(ctx context.Context) ([]models.BookingRecord, error) {
	return r.list.Load(ctx)
}

func (r *kvRecordRepo) Append(ctx context.Context, record models.BookingRecord) error {
	return r.list.Prepend(ctx, record)
}

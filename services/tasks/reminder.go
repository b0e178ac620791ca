package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"flexispace/models"
	"flexispace/services/transaction"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

// ReminderPayload is the body of a booking reminder task.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	SpaceTitle string `json:"spaceTitle"`
	Location   string `json:"location"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	GuestCount int    `json:"guestCount"`
}

func PayloadFor(record models.BookingRecord) ReminderPayload {
	return ReminderPayload{
		BookingID:  record.ID,
		SpaceTitle: record.Space.Title,
		Location:   record.Space.Location,
		Date:       record.Date,
		Time:       record.Time,
		GuestCount: record.GuestCount,
	}
}

// NewReminderTask builds the task and its options. The booking id doubles as the
// task id so a booking is never reminded twice.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderTime is lead before the booking starts, or now when that moment has
// already passed. It reports false for bookings that have already started.
func ReminderTime(record models.BookingRecord, lead time.Duration, now time.Time) (time.Time, bool) {
	start, err := eventStart(record, now.Location())
	if err != nil || !start.After(now) {
		return time.Time{}, false
	}
	fireAt := start.Add(-lead)
	if fireAt.Before(now) {
		fireAt = now
	}
	return fireAt, true
}

func eventStart(record models.BookingRecord, loc *time.Location) (time.Time, error) {
	startClock, _, _ := strings.Cut(record.Time, " - ")
	return time.ParseInLocation("2006-01-02 15:04", record.Date+" "+strings.TrimSpace(startClock), loc)
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler enqueues a reminder for every confirmed booking.
type ReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

func NewReminderScheduler(client Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{Client: client, Lead: lead, Now: time.Now, Logger: logger}
}

// Schedule enqueues the reminder for record. Bookings already under way are skipped.
func (s *ReminderScheduler) Schedule(ctx context.Context, record models.BookingRecord) error {
	fireAt, ok := ReminderTime(record, s.Lead, s.Now())
	if !ok {
		return nil
	}
	task, opts, err := NewReminderTask(PayloadFor(record), fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", record.ID, err)
	}
	return nil
}

func (s *ReminderScheduler) BookingConfirmed(ctx context.Context, record models.BookingRecord) {
	if err := s.Schedule(ctx, record); err != nil {
		s.Logger.Warn("Failed to schedule booking reminder", zap.String("bookingID", record.ID), zap.Error(err))
		return
	}
	s.Logger.Debug("Booking reminder scheduled", zap.String("bookingID", record.ID))
}

func (s *ReminderScheduler) ConfirmationFailed(ctx context.Context, err *transaction.ConfirmationError) {}

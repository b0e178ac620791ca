package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flexispace/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "x", Type: task.Type()}, nil
}

var now = time.Date(2026, 10, 30, 12, 0, 0, 0, time.UTC)

func record(date, window string) models.BookingRecord {
	return models.BookingRecord{
		ID:         "b1",
		Space:      models.SpaceSummary{Title: "Rooftop Garden", Location: "Bandra"},
		Date:       date,
		Time:       window,
		GuestCount: 40,
	}
}

func TestReminderTime(t *testing.T) {
	tests := []struct {
		name   string
		rec    models.BookingRecord
		want   time.Time
		wantOK bool
	}{
		{name: "a day ahead of a distant booking", rec: record("2026-11-02", "10:00 - 14:00"), want: time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC), wantOK: true},
		{name: "inside the lead window fires now", rec: record("2026-10-30", "18:00 - 20:00"), want: now, wantOK: true},
		{name: "already started", rec: record("2026-10-30", "11:00 - 13:00")},
		{name: "unparseable", rec: record("soon", "10:00 - 14:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReminderTime(tt.rec, 24*time.Hour, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestNewReminderTask(t *testing.T) {
	task, opts, err := NewReminderTask(PayloadFor(record("2026-11-02", "10:00 - 14:00")), now)
	require.NoError(t, err)
	assert.Equal(t, TypeBookingReminder, task.Type())
	assert.Len(t, opts, 3)

	var p ReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "b1", p.BookingID)
	assert.Equal(t, "Rooftop Garden", p.SpaceTitle)
	assert.Equal(t, 40, p.GuestCount)
}

func TestReminderSchedulerObserver(t *testing.T) {
	q := &fakeEnqueuer{}
	s := NewReminderScheduler(q, 24*time.Hour, zap.NewNop())
	s.Now = func() time.Time { return now }

	s.BookingConfirmed(context.Background(), record("2026-11-02", "10:00 - 14:00"))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeBookingReminder, q.tasks[0].Type())

	s.BookingConfirmed(context.Background(), record("2026-10-30", "09:00 - 10:00"))
	assert.Len(t, q.tasks, 1, "past bookings are skipped")
}

func TestReminderSchedulerReportsEnqueueErrors(t *testing.T) {
	q := &fakeEnqueuer{err: errors.New("redis down")}
	s := NewReminderScheduler(q, time.Hour, zap.NewNop())
	s.Now = func() time.Time { return now }

	err := s.Schedule(context.Background(), record("2026-11-02", "10:00 - 14:00"))
	assert.ErrorContains(t, err, "redis down")

	// the observer swallows the error
	s.BookingConfirmed(context.Background(), record("2026-11-02", "10:00 - 14:00"))
}

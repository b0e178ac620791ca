package booking

import (
	"context"
	"errors"
	"testing"

	"flexispace/database/kv"
	"flexispace/database/repository"
	"flexispace/models"
	"flexispace/services/catalog"
	"flexispace/services/sessions"
	"flexispace/services/transaction"
	"flexispace/services/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const spaceID = "ramaiah-sports-ground"

type failingRepo struct {
	repository.BookingRecordRepository
}

func (failingRepo) Append(ctx context.Context, r models.BookingRecord) error {
	return errors.New("store unavailable")
}

func newService(t *testing.T, repo repository.BookingRecordRepository) (*DefaultBookingSessionService, *transaction.ManualClock) {
	t.Helper()
	clock := transaction.NewManualClock()
	svc := NewBookingSessionService(catalog.Default(), repo, Options{
		Currency:    "INR",
		Transaction: transaction.Options{Scheduler: clock},
		Logger:      zap.NewNop(),
	})
	t.Cleanup(svc.Close)
	return svc, clock
}

func fillSchedule(t *testing.T, svc *DefaultBookingSessionService, id string) {
	t.Helper()
	ctx := context.Background()
	for path, value := range map[string]any{
		"date":       "2026-11-02",
		"startTime":  "10:00",
		"endTime":    "14:00",
		"guestCount": 50,
	} {
		_, err := svc.UpdateField(ctx, id, path, value)
		require.NoError(t, err, path)
	}
}

func walkToLastStep(t *testing.T, svc *DefaultBookingSessionService, id string) *SessionView {
	t.Helper()
	var v *SessionView
	var err error
	for i := 0; i < 3; i++ {
		v, err = svc.Next(context.Background(), id)
		require.NoError(t, err)
		require.True(t, v.Moved)
	}
	return v
}

func TestInitiateSession(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))

	v, err := svc.InitiateSession(context.Background(), spaceID)
	require.NoError(t, err)
	assert.NotEmpty(t, v.SessionID)
	assert.Equal(t, "Ramaiah Sports Ground", v.Space.Title)
	assert.Len(t, v.Steps, 4)
	assert.Equal(t, 0, v.CurrentStep)
	assert.Equal(t, models.DefaultGuestCount, v.Form.GuestCount)
	assert.NotNil(t, v.SelectedServices)
	assert.Equal(t, transaction.StateIdle, v.Transaction.State)
	require.NotNil(t, v.StepError)
	assert.Equal(t, wizard.RuleDateRequired, v.StepError.Rule)

	_, err = svc.InitiateSession(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrSpaceNotFound)
}

func TestQuoteMatchesPricing(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))
	ctx := context.Background()
	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)
	fillSchedule(t, svc, v.SessionID)

	q, err := svc.Quote(ctx, v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.FromMajor(4800), q.SpaceSubtotal)
	assert.Equal(t, "₹4,800", q.TotalDisplay)

	v, err = svc.ToggleService(ctx, v.SessionID, "4")
	require.NoError(t, err)
	assert.Equal(t, models.FromMajor(19800), v.Quote.Total)
	require.Len(t, v.SelectedServices, 1)

	v, err = svc.ToggleService(ctx, v.SessionID, "4")
	require.NoError(t, err)
	assert.Equal(t, models.FromMajor(4800), v.Quote.Total)
	assert.Empty(t, v.SelectedServices)

	_, err = svc.ToggleService(ctx, v.SessionID, "99")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}

func TestNavigationRespectsValidation(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))
	ctx := context.Background()
	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)
	id := v.SessionID

	v, err = svc.Next(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Moved)
	assert.Equal(t, 0, v.CurrentStep)

	fillSchedule(t, svc, id)
	_, err = svc.UpdateField(ctx, id, "guestCount", 601)
	require.NoError(t, err)
	v, err = svc.Next(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Moved, "over capacity")
	assert.Equal(t, wizard.RuleGuestCountOutOfRange, v.StepError.Rule)

	_, err = svc.UpdateField(ctx, id, "guestCount", "600")
	require.NoError(t, err)
	v = walkToLastStep(t, svc, id)
	assert.Equal(t, 3, v.CurrentStep)

	v, err = svc.Next(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Moved)
	assert.Equal(t, 3, v.CurrentStep)

	v, err = svc.GoTo(ctx, id, 0)
	require.NoError(t, err)
	assert.True(t, v.Moved)

	for _, step := range []int{-1, 4, 9} {
		v, err = svc.GoTo(ctx, id, step)
		require.NoError(t, err)
		assert.False(t, v.Moved)
		assert.Equal(t, 0, v.CurrentStep)
	}

	v, err = svc.Back(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Moved)
}

func TestUpdateFieldErrors(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))
	ctx := context.Background()
	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)

	_, err = svc.UpdateField(ctx, v.SessionID, "venue", "x")
	assert.ErrorIs(t, err, wizard.ErrUnknownField)

	_, err = svc.UpdateField(ctx, "nope", "date", "2026-11-02")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestConfirmBookingEndToEnd(t *testing.T) {
	repo := repository.NewKVRecordRepo(kv.NewMemoryStore())
	svc, clock := newService(t, repo)
	ctx := context.Background()

	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)
	id := v.SessionID
	fillSchedule(t, svc, id)
	_, err = svc.ToggleService(ctx, id, "4")
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, id)
	assert.ErrorIs(t, err, ErrNotAtLastStep)

	walkToLastStep(t, svc, id)
	v, err = svc.ConfirmBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateProcessing, v.Transaction.State)

	// cancel and edits are ignored while processing
	v, err = svc.CancelSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateProcessing, v.Transaction.State)
	_, err = svc.UpdateField(ctx, id, "guestCount", 10)
	assert.ErrorIs(t, err, ErrSessionLocked)
	_, err = svc.ConfirmBooking(ctx, id)
	assert.ErrorIs(t, err, transaction.ErrInvalidTransition)

	clock.Advance(transaction.DefaultConfirmationDelay)
	v, err = svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateConfirmed, v.Transaction.State)

	records, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.FromMajor(19800), records[0].Amount)
	assert.Equal(t, "10:00 - 14:00", records[0].Time)
	assert.Equal(t, []string{"Catering Service"}, records[0].Services)

	clock.Advance(transaction.DefaultRedirectDelay)
	v, err = svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.IntentDashboard, v.Transaction.Intent)
}

func TestConfirmBookingPersistenceFailure(t *testing.T) {
	svc, clock := newService(t, failingRepo{})
	ctx := context.Background()

	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)
	id := v.SessionID
	fillSchedule(t, svc, id)
	walkToLastStep(t, svc, id)

	_, err = svc.ConfirmBooking(ctx, id)
	require.NoError(t, err)
	clock.Advance(transaction.DefaultConfirmationDelay)

	v, err = svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateFailed, v.Transaction.State)
	assert.Equal(t, transaction.ReasonPersistence, v.Transaction.Failure.Reason)

	v, err = svc.CancelSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateIdle, v.Transaction.State)

	_, err = svc.RetryConfirmation(ctx, id)
	assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
}

func TestCancelIdleSessionEndsIt(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))
	ctx := context.Background()
	v, err := svc.InitiateSession(ctx, spaceID)
	require.NoError(t, err)

	v, err = svc.CancelSession(ctx, v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSpaceDetail, v.Transaction.Intent)

	_, err = svc.GetSession(ctx, v.SessionID)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestGetAvailableServices(t *testing.T) {
	svc, _ := newService(t, repository.NewKVRecordRepo(kv.NewMemoryStore()))
	services, err := svc.GetAvailableServices()
	require.NoError(t, err)
	assert.Len(t, services, 4)
}

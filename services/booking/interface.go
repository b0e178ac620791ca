package booking

import (
	"context"
	"time"

	"flexispace/database/repository"
	"flexispace/models"
	"flexispace/services/catalog"
	"flexispace/services/sessions"
	"flexispace/services/transaction"

	"go.uber.org/zap"
)

// BookingSessionService defines the interface for managing a stateful booking session.
type BookingSessionService interface {
	InitiateSession(ctx context.Context, spaceID string) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	UpdateField(ctx context.Context, sessionID, path string, value any) (*SessionView, error)
	ToggleService(ctx context.Context, sessionID, serviceID string) (*SessionView, error)
	Next(ctx context.Context, sessionID string) (*SessionView, error)
	Back(ctx context.Context, sessionID string) (*SessionView, error)
	GoTo(ctx context.Context, sessionID string, step int) (*SessionView, error)
	Quote(ctx context.Context, sessionID string) (*QuoteView, error)
	ConfirmBooking(ctx context.Context, sessionID string) (*SessionView, error)
	RetryConfirmation(ctx context.Context, sessionID string) (*SessionView, error)
	CancelSession(ctx context.Context, sessionID string) (*SessionView, error)
	ListBookings(ctx context.Context) ([]models.BookingRecord, error)
	GetAvailableServices() ([]models.SelectedService, error)
}

type Options struct {
	Currency   string
	SessionTTL time.Duration
	// Transaction is the template for each session's simulator. OnIntent is set per session.
	Transaction transaction.Options
	Now         func() time.Time
	Logger      *zap.Logger
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Catalog  *catalog.Catalog
	Repo     repository.BookingRecordRepository
	opts     Options
	sessions *sessions.Registry[*session]
}

func NewBookingSessionService(cat *catalog.Catalog, repo repository.BookingRecordRepository, opts Options) *DefaultBookingSessionService {
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.L()
	}
	if opts.Transaction.Logger == nil {
		opts.Transaction.Logger = opts.Logger
	}
	return &DefaultBookingSessionService{
		Catalog:  cat,
		Repo:     repo,
		opts:     opts,
		sessions: sessions.NewRegistry[*session](opts.SessionTTL, opts.Now),
	}
}

// RunJanitor closes expired sessions every interval until ctx is done.
func (s *DefaultBookingSessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	s.sessions.RunJanitor(ctx, interval)
}

// Close cancels every pending confirmation timer.
func (s *DefaultBookingSessionService) Close() {
	s.sessions.CloseAll()
}

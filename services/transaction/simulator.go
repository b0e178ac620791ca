// Package transaction simulates confirming a booking: a short processing delay,
// an escrow authorization, persisting the booking record and a timed hand-off
// to the dashboard. All delays run through an injected Scheduler so callers can
// cancel them and tests can fast-forward them.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flexispace/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

const (
	DefaultConfirmationDelay = 3000 * time.Millisecond
	DefaultRedirectDelay     = 2000 * time.Millisecond
)

// BookingRepository stores confirmed bookings, newest first.
type BookingRepository interface {
	List(ctx context.Context) ([]models.BookingRecord, error)
	Append(ctx context.Context, record models.BookingRecord) error
}

// Observer is told about the outcome of every confirmation attempt.
// Calls are made without the simulator lock held.
type Observer interface {
	BookingConfirmed(ctx context.Context, record models.BookingRecord)
	ConfirmationFailed(ctx context.Context, err *ConfirmationError)
}

type Options struct {
	ConfirmationDelay time.Duration
	RedirectDelay     time.Duration
	// AuthorizeTimeout bounds a single Processor call; zero means no bound.
	AuthorizeTimeout time.Duration
	Scheduler        Scheduler
	Processor        Processor
	Observers        []Observer
	// OnIntent receives navigation intents (dashboard, space_detail).
	OnIntent func(models.Intent)
	Now      func() time.Time
	Logger   *zap.Logger
}

// Snapshot is a read-only view of a simulator.
type Snapshot struct {
	State   State                 `json:"state"`
	Failure *ConfirmationError    `json:"failure,omitempty"`
	Record  *models.BookingRecord `json:"record,omitempty"`
	Intent  models.Intent         `json:"intent,omitempty"`
	Exited  bool                  `json:"exited"`
}

type Simulator struct {
	repo BookingRepository
	opts Options

	mu      sync.Mutex
	state   State
	req     Request
	ctx     context.Context
	failure *ConfirmationError
	record  *models.BookingRecord
	intent  models.Intent
	exited  bool
	pending Timer
	gen     int
	// inFlight is set while a confirmation is authorizing or saving.
	inFlight bool
	closed   bool
}

func NewSimulator(repo BookingRepository, opts Options) *Simulator {
	if opts.ConfirmationDelay <= 0 {
		opts.ConfirmationDelay = DefaultConfirmationDelay
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallClock{}
	}
	if opts.Processor == nil {
		opts.Processor = SimulatedEscrow{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.L()
	}
	return &Simulator{repo: repo, opts: opts, state: StateIdle}
}

func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, Failure: s.failure, Intent: s.intent, Exited: s.exited}
	if s.record != nil {
		rec := *s.record
		snap.Record = &rec
	}
	return snap
}

// Start moves Idle to Processing and schedules the confirmation. The context's
// values are kept for the delayed work but its cancellation is not.
func (s *Simulator) Start(ctx context.Context, req Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.req = req
	s.beginLocked(ctx)
	return nil
}

// Retry moves Failed back to Processing with the same request.
func (s *Simulator) Retry(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.state != StateFailed {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, s.state)
	}
	s.failure = nil
	s.beginLocked(ctx)
	return nil
}

func (s *Simulator) beginLocked(ctx context.Context) {
	s.state = StateProcessing
	s.ctx = context.WithoutCancel(ctx)
	s.gen++
	gen := s.gen
	s.pending = s.opts.Scheduler.AfterFunc(s.opts.ConfirmationDelay, func() { s.confirm(gen) })
	s.opts.Logger.Debug("Booking confirmation scheduled",
		zap.String("space", s.req.Space.ID), zap.Duration("delay", s.opts.ConfirmationDelay))
}

// Cancel backs out of the flow. From Idle it emits the space detail intent, from
// Failed it returns to Idle. While Processing or Confirmed it does nothing.
func (s *Simulator) Cancel() bool {
	s.mu.Lock()
	var emit models.Intent
	switch {
	case s.closed:
	case s.state == StateIdle:
		s.intent = models.IntentSpaceDetail
		emit = s.intent
	case s.state == StateFailed:
		s.state = StateIdle
		s.failure = nil
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	if emit == models.IntentNone {
		return false
	}
	s.emit(emit)
	return true
}

// Close stops any pending timer. Callbacks that still fire are ignored.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Simulator) confirm(gen int) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.state != StateProcessing || s.inFlight {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.inFlight = true
	ctx, req := s.ctx, s.req
	s.mu.Unlock()

	// The state stays Processing while the processor and repository are called, so
	// Start and Retry are refused and at most one record is appended per attempt.
	record, cerr := s.process(ctx, req, gen)

	s.mu.Lock()
	s.inFlight = false
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		if cerr == nil && record.ID != "" {
			s.opts.Logger.Info("Booking saved after its session closed",
				zap.String("bookingID", record.ID), zap.String("space", req.Space.ID))
			for _, o := range s.opts.Observers {
				o.BookingConfirmed(ctx, record)
			}
		}
		return
	}
	if cerr != nil {
		s.state = StateFailed
		s.failure = cerr
		s.mu.Unlock()

		s.opts.Logger.Warn("Booking confirmation failed",
			zap.String("space", req.Space.ID), zap.String("reason", string(cerr.Reason)), zap.Error(cerr))
		for _, o := range s.opts.Observers {
			o.ConfirmationFailed(ctx, cerr)
		}
		return
	}

	s.state = StateConfirmed
	s.record = &record
	s.pending = s.opts.Scheduler.AfterFunc(s.opts.RedirectDelay, func() { s.exit(gen) })
	s.mu.Unlock()

	s.opts.Logger.Info("Booking confirmed",
		zap.String("bookingID", record.ID), zap.String("space", req.Space.ID), zap.Int64("amount", int64(record.Amount)))
	for _, o := range s.opts.Observers {
		o.BookingConfirmed(ctx, record)
	}
}

// current reports whether gen is still the live attempt.
func (s *Simulator) current(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && gen == s.gen
}

// process authorizes and persists without the simulator lock held. An attempt
// that went stale during authorization is dropped before anything is saved; the
// zero record with a nil error reports that.
func (s *Simulator) process(ctx context.Context, req Request, gen int) (models.BookingRecord, *ConfirmationError) {
	authCtx := ctx
	if s.opts.AuthorizeTimeout > 0 {
		var cancel context.CancelFunc
		authCtx, cancel = context.WithTimeout(ctx, s.opts.AuthorizeTimeout)
		defer cancel()
	}
	auth, err := s.opts.Processor.Authorize(authCtx, req)
	if err != nil {
		return models.BookingRecord{}, asConfirmationError(err)
	}
	if !s.current(gen) {
		return models.BookingRecord{}, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.BookingRecord{}, &ConfirmationError{Reason: ReasonValidation, Message: "could not allocate booking id", Err: err}
	}
	names := make([]string, len(req.Services))
	for i, svc := range req.Services {
		names[i] = svc.Name
	}
	record := models.BookingRecord{
		ID:              id.String(),
		Space:           req.Space.Summary(),
		Date:            req.Form.Date,
		Time:            req.Form.TimeRange(),
		GuestCount:      req.Form.GuestCount,
		Services:        names,
		Status:          models.StatusUpcoming,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ContractAddress: auth.ContractAddress,
		CreatedAt:       s.opts.Now().UTC(),
	}
	if err := s.repo.Append(ctx, record); err != nil {
		return models.BookingRecord{}, &ConfirmationError{
			Reason:  ReasonPersistence,
			Message: "booking could not be saved",
			Err:     &PersistenceError{Op: "append", Err: err},
		}
	}
	return record, nil
}

func asConfirmationError(err error) *ConfirmationError {
	var cerr *ConfirmationError
	if errors.As(err, &cerr) {
		return cerr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ConfirmationError{Reason: ReasonTimeout, Message: "payment authorization timed out", Err: err}
	}
	return &ConfirmationError{Reason: ReasonDeclined, Message: "payment was declined", Err: err}
}

func (s *Simulator) exit(gen int) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.state != StateConfirmed || s.exited {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.exited = true
	s.intent = models.IntentDashboard
	s.mu.Unlock()

	s.emit(models.IntentDashboard)
}

func (s *Simulator) emit(intent models.Intent) {
	if s.opts.OnIntent != nil {
		s.opts.OnIntent(intent)
	}
}

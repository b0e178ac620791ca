package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flexispace/metrics"
	"flexispace/models"
	"flexispace/services/pricing"
	"flexispace/services/transaction"
	"flexispace/services/wizard"

	"go.uber.org/zap"
)

// session is one booking flow for one space. mu serializes wizard and selection
// access; the simulator has its own lock so timer callbacks never wait on mu.
type session struct {
	mu        sync.Mutex
	space     models.Space
	wizard    *wizard.Wizard[models.BookingForm]
	selection pricing.Selection
	sim       *transaction.Simulator
}

func (s *session) Close() {
	s.sim.Close()
}

// SessionView is the renderable state of a booking session.
type SessionView struct {
	SessionID        string                   `json:"sessionId"`
	Space            models.Space             `json:"space"`
	Steps            []wizard.StepState       `json:"steps"`
	CurrentStep      int                      `json:"currentStep"`
	Form             models.BookingForm       `json:"form"`
	SelectedServices []models.SelectedService `json:"selectedServices"`
	Quote            pricing.Breakdown        `json:"quote"`
	QuoteError       string                   `json:"quoteError,omitempty"`
	StepError        *wizard.ValidationError  `json:"stepError,omitempty"`
	Moved            bool                     `json:"moved"`
	Transaction      transaction.Snapshot     `json:"transaction"`
	ExpiresAt        time.Time                `json:"expiresAt"`
}

// QuoteView is the price breakdown for the review step.
type QuoteView struct {
	pricing.Breakdown
	Error string `json:"error,omitempty"`
}

// InitiateSession creates a new booking session for a space.
func (s *DefaultBookingSessionService) InitiateSession(ctx context.Context, spaceID string) (*SessionView, error) {
	space, err := s.Catalog.Space(spaceID)
	if err != nil {
		return nil, err
	}

	var id string
	simOpts := s.opts.Transaction
	simOpts.OnIntent = func(intent models.Intent) {
		s.opts.Logger.Info("Booking session navigation", zap.String("sessionID", id), zap.String("intent", string(intent)))
	}
	sess := &session{
		space:  space,
		wizard: wizard.NewBookingWizard(space.Capacity),
		sim:    transaction.NewSimulator(s.Repo, simOpts),
	}

	id, exp, err := s.sessions.Add(sess)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to register booking session: %w", err)
	}
	s.opts.Logger.Info("Booking session initiated", zap.String("sessionID", id), zap.String("spaceID", spaceID))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(id, exp, sess, false), nil
}

func (s *DefaultBookingSessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, false, func(sess *session) (bool, error) {
		return false, nil
	})
}

// UpdateField sets one booking form field by its JSON path, e.g. "contactInfo.email".
func (s *DefaultBookingSessionService) UpdateField(ctx context.Context, sessionID, path string, value any) (*SessionView, error) {
	return s.withSession(sessionID, true, func(sess *session) (bool, error) {
		return false, sess.wizard.UpdateField(path, value)
	})
}

// ToggleService adds the catalog service when it is not selected and removes it when it is.
func (s *DefaultBookingSessionService) ToggleService(ctx context.Context, sessionID, serviceID string) (*SessionView, error) {
	svc, err := s.Catalog.Service(serviceID)
	if err != nil {
		return nil, err
	}
	return s.withSession(sessionID, true, func(sess *session) (bool, error) {
		sess.selection.Toggle(svc)
		return false, nil
	})
}

func (s *DefaultBookingSessionService) Next(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, true, func(sess *session) (bool, error) {
		moved := sess.wizard.Next()
		metrics.ObserveTransition("booking", "next", moved)
		return moved, nil
	})
}

func (s *DefaultBookingSessionService) Back(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, true, func(sess *session) (bool, error) {
		moved := sess.wizard.Back()
		metrics.ObserveTransition("booking", "back", moved)
		return moved, nil
	})
}

func (s *DefaultBookingSessionService) GoTo(ctx context.Context, sessionID string, step int) (*SessionView, error) {
	return s.withSession(sessionID, true, func(sess *session) (bool, error) {
		moved := sess.wizard.GoTo(step)
		metrics.ObserveTransition("booking", "goto", moved)
		return moved, nil
	})
}

func (s *DefaultBookingSessionService) Quote(ctx context.Context, sessionID string) (*QuoteView, error) {
	var out *QuoteView
	_, err := s.withSession(sessionID, false, func(sess *session) (bool, error) {
		b, qerr := s.quote(sess)
		out = &QuoteView{Breakdown: b}
		if qerr != nil {
			out.Error = qerr.Error()
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmBooking starts the simulated payment. It requires the last step with every step valid.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, false, func(sess *session) (bool, error) {
		if !sess.wizard.AtLastStep() {
			return false, ErrNotAtLastStep
		}
		if verr := sess.wizard.ValidateAll(); verr != nil {
			return false, verr
		}
		b, err := s.quote(sess)
		if err != nil {
			return false, err
		}
		req := transaction.Request{
			Space:    sess.space,
			Form:     sess.wizard.Form(),
			Services: sess.selection.Items(),
			Amount:   b.Total,
			Currency: s.opts.Currency,
		}
		if err := sess.sim.Start(ctx, req); err != nil {
			return false, err
		}
		s.opts.Logger.Info("Booking confirmation started",
			zap.String("sessionID", sessionID), zap.String("total", b.TotalDisplay))
		return false, nil
	})
}

func (s *DefaultBookingSessionService) RetryConfirmation(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, false, func(sess *session) (bool, error) {
		return false, sess.sim.Retry(ctx)
	})
}

// CancelSession leaves the flow. From an idle session it emits the space detail
// intent and ends the session; from a failed confirmation it returns to idle.
// It has no effect while a confirmation is processing or confirmed.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) (*SessionView, error) {
	view, err := s.withSession(sessionID, false, func(sess *session) (bool, error) {
		return sess.sim.Cancel(), nil
	})
	if err != nil {
		return nil, err
	}
	if view.Transaction.Intent == models.IntentSpaceDetail {
		s.sessions.Remove(sessionID)
		s.opts.Logger.Info("Booking session cancelled", zap.String("sessionID", sessionID))
	}
	return view, nil
}

func (s *DefaultBookingSessionService) ListBookings(ctx context.Context) ([]models.BookingRecord, error) {
	records, err := s.Repo.List(ctx)
	if err != nil {
		return nil, &transaction.PersistenceError{Op: "list", Err: err}
	}
	return records, nil
}

func (s *DefaultBookingSessionService) GetAvailableServices() ([]models.SelectedService, error) {
	return s.Catalog.Services(), nil
}

// withSession runs fn under the session lock and renders the result. Edits are
// refused with ErrSessionLocked once the simulator has left Idle.
func (s *DefaultBookingSessionService) withSession(sessionID string, edit bool, fn func(sess *session) (bool, error)) (*SessionView, error) {
	sess, exp, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if edit && sess.sim.State() != transaction.StateIdle {
		return nil, ErrSessionLocked
	}
	moved, err := fn(sess)
	if err != nil {
		var verr *wizard.ValidationError
		if !errors.As(err, &verr) {
			s.opts.Logger.Debug("Booking session operation rejected", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return nil, err
	}
	return s.view(sessionID, exp, sess, moved), nil
}

func (s *DefaultBookingSessionService) quote(sess *session) (pricing.Breakdown, error) {
	return pricing.Quote(sess.space.BasePrice, s.opts.Currency, sess.wizard.Form(), sess.selection.Items())
}

func (s *DefaultBookingSessionService) view(id string, exp time.Time, sess *session, moved bool) *SessionView {
	selected := sess.selection.Items()
	if selected == nil {
		selected = []models.SelectedService{}
	}
	b, qerr := s.quote(sess)
	v := &SessionView{
		SessionID:        id,
		Space:            sess.space,
		Steps:            sess.wizard.Steps(),
		CurrentStep:      sess.wizard.Current(),
		Form:             sess.wizard.Form(),
		SelectedServices: selected,
		Quote:            b,
		StepError:        sess.wizard.Validate(sess.wizard.Current()),
		Moved:            moved,
		Transaction:      sess.sim.Snapshot(),
		ExpiresAt:        exp,
	}
	if qerr != nil {
		v.QuoteError = qerr.Error()
	}
	return v
}

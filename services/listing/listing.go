// Package listing runs the host flow that turns a ListingForm into a submission for review.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flexispace/database/repository"
	"flexispace/metrics"
	"flexispace/models"
	"flexispace/services/sessions"
	"flexispace/services/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotAtLastStep  = errors.New("listing can only be submitted from the review step")
	ErrUnknownAmenity = errors.New("unknown amenity")
)

type ListingSessionService interface {
	InitiateSession(ctx context.Context) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	UpdateField(ctx context.Context, sessionID, path string, value any) (*SessionView, error)
	SetImage(ctx context.Context, sessionID string, index int, url string) (*SessionView, error)
	AddImageField(ctx context.Context, sessionID string) (*SessionView, error)
	SetAmenity(ctx context.Context, sessionID string, key models.AmenityKey, enabled bool) (*SessionView, error)
	Next(ctx context.Context, sessionID string) (*SessionView, error)
	Back(ctx context.Context, sessionID string) (*SessionView, error)
	GoTo(ctx context.Context, sessionID string, step int) (*SessionView, error)
	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)
	ListSubmissions(ctx context.Context) ([]models.ListingSubmission, error)
}

type session struct {
	mu     sync.Mutex
	wizard *wizard.Wizard[models.ListingForm]
}

func (s *session) Close() {}

type SessionView struct {
	SessionID   string                  `json:"sessionId"`
	Steps       []wizard.StepState      `json:"steps"`
	CurrentStep int                     `json:"currentStep"`
	Form        models.ListingForm      `json:"form"`
	StepError   *wizard.ValidationError `json:"stepError,omitempty"`
	Moved       bool                    `json:"moved"`
	ExpiresAt   time.Time               `json:"expiresAt"`
}

type SubmitResult struct {
	Submission models.ListingSubmission `json:"submission"`
	Intent     models.Intent            `json:"intent"`
}

type DefaultListingSessionService struct {
	Repo     repository.ListingRepository
	now      func() time.Time
	logger   *zap.Logger
	sessions *sessions.Registry[*session]
}

func NewListingSessionService(repo repository.ListingRepository, ttl time.Duration, logger *zap.Logger) *DefaultListingSessionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.L()
	}
	return &DefaultListingSessionService{
		Repo:     repo,
		now:      time.Now,
		logger:   logger,
		sessions: sessions.NewRegistry[*session](ttl, nil),
	}
}

func (s *DefaultListingSessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	s.sessions.RunJanitor(ctx, interval)
}

func (s *DefaultListingSessionService) InitiateSession(ctx context.Context) (*SessionView, error) {
	sess := &session{wizard: wizard.NewListingWizard()}
	id, exp, err := s.sessions.Add(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to register listing session: %w", err)
	}
	s.logger.Info("Listing session initiated", zap.String("sessionID", id))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return view(id, exp, sess, false), nil
}

func (s *DefaultListingSessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) { return false, nil })
}

func (s *DefaultListingSessionService) UpdateField(ctx context.Context, sessionID, path string, value any) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		return false, sess.wizard.UpdateField(path, value)
	})
}

// SetImage replaces the image URL at index. The index must already exist.
func (s *DefaultListingSessionService) SetImage(ctx context.Context, sessionID string, index int, url string) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		return false, sess.wizard.UpdateField(fmt.Sprintf("images.%d", index), url)
	})
}

// AddImageField appends an empty image slot.
func (s *DefaultListingSessionService) AddImageField(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		sess.wizard.Update(func(f *models.ListingForm) {
			f.Images = append(f.Images, "")
		})
		return false, nil
	})
}

func (s *DefaultListingSessionService) SetAmenity(ctx context.Context, sessionID string, key models.AmenityKey, enabled bool) (*SessionView, error) {
	if !models.KnownAmenity(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAmenity, key)
	}
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		sess.wizard.Update(func(f *models.ListingForm) {
			if f.Amenities == nil {
				f.Amenities = map[models.AmenityKey]bool{}
			}
			f.Amenities[key] = enabled
		})
		return false, nil
	})
}

func (s *DefaultListingSessionService) Next(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		moved := sess.wizard.Next()
		metrics.ObserveTransition("listing", "next", moved)
		return moved, nil
	})
}

func (s *DefaultListingSessionService) Back(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		moved := sess.wizard.Back()
		metrics.ObserveTransition("listing", "back", moved)
		return moved, nil
	})
}

func (s *DefaultListingSessionService) GoTo(ctx context.Context, sessionID string, step int) (*SessionView, error) {
	return s.withSession(sessionID, func(sess *session) (bool, error) {
		moved := sess.wizard.GoTo(step)
		metrics.ObserveTransition("listing", "goto", moved)
		return moved, nil
	})
}

// Submit stores the listing for review and ends the session with the home intent.
func (s *DefaultListingSessionService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	sess, _, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.wizard.AtLastStep() {
		return nil, ErrNotAtLastStep
	}
	if verr := sess.wizard.ValidateAll(); verr != nil {
		return nil, verr
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	sub := models.ListingSubmission{
		ID:        id.String(),
		Listing:   sess.wizard.Form(),
		Status:    models.ListingPendingReview,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Append(ctx, sub); err != nil {
		s.logger.Error("Failed to store listing submission", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to store listing: %w", err)
	}
	metrics.ListingSubmissions.Inc()
	s.sessions.Remove(sessionID)
	s.logger.Info("Listing submitted", zap.String("listingID", sub.ID), zap.String("title", sub.Listing.Title))
	return &SubmitResult{Submission: sub, Intent: models.IntentHome}, nil
}

func (s *DefaultListingSessionService) ListSubmissions(ctx context.Context) ([]models.ListingSubmission, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultListingSessionService) withSession(sessionID string, fn func(sess *session) (bool, error)) (*SessionView, error) {
	sess, exp, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	moved, err := fn(sess)
	if err != nil {
		return nil, err
	}
	return view(sessionID, exp, sess, moved), nil
}

func view(id string, exp time.Time, sess *session, moved bool) *SessionView {
	return &SessionView{
		SessionID:   id,
		Steps:       sess.wizard.Steps(),
		CurrentStep: sess.wizard.Current(),
		Form:        sess.wizard.Form(),
		StepError:   sess.wizard.Validate(sess.wizard.Current()),
		Moved:       moved,
		ExpiresAt:   exp,
	}
}

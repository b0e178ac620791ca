package transaction

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in the current state.
	ErrInvalidTransition = errors.New("invalid transaction state transition")
	// ErrClosed is returned by a simulator whose timers were released by Close.
	ErrClosed = errors.New("transaction simulator closed")
)

// FailureReason classifies why a confirmation ended in StateFailed.
type FailureReason string

const (
	ReasonDeclined    FailureReason = "declined"
	ReasonTimeout     FailureReason = "timeout"
	ReasonValidation  FailureReason = "validation"
	ReasonPersistence FailureReason = "persistence"
)

// ConfirmationError is the failure recorded on a simulator in StateFailed.
type ConfirmationError struct {
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
	Err     error         `json:"-"`
}

func (e *ConfirmationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("confirmation %s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("confirmation %s: %s", e.Reason, e.Message)
}

func (e *ConfirmationError) Unwrap() error {
	return e.Err
}

// Declined builds the error a Processor returns to refuse an authorization.
func Declined(message string) *ConfirmationError {
	return &ConfirmationError{Reason: ReasonDeclined, Message: message}
}

// PersistenceError wraps a failed BookingRepository call.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

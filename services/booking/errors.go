package booking

import "errors"

var (
	ErrNotAtLastStep = errors.New("booking can only be confirmed from the last step")
	// ErrSessionLocked is returned for edits once a confirmation has started.
	ErrSessionLocked = errors.New("booking session is locked while the booking is being confirmed")
)

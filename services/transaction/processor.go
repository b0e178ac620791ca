package transaction

import (
	"context"
	"encoding/hex"
	"strings"

	"flexispace/models"

	"github.com/google/uuid"
)

// Request is everything needed to confirm one booking.
type Request struct {
	Space    models.Space
	Form     models.BookingForm
	Services []models.SelectedService
	Amount   models.Money
	Currency string
}

// Authorization is the result of a successful escrow hold.
type Authorization struct {
	ContractAddress string
}

// Processor authorizes payment for a booking. A *ConfirmationError return keeps its
// reason; any other error is treated as declined.
type Processor interface {
	Authorize(ctx context.Context, req Request) (Authorization, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, req Request) (Authorization, error)

func (f ProcessorFunc) Authorize(ctx context.Context, req Request) (Authorization, error) {
	return f(ctx, req)
}

// SimulatedEscrow approves every well-formed request and hands back a random
// contract address. No funds move.
type SimulatedEscrow struct{}

func (SimulatedEscrow) Authorize(ctx context.Context, req Request) (Authorization, error) {
	if err := ctx.Err(); err != nil {
		return Authorization{}, err
	}
	if req.Amount <= 0 {
		return Authorization{}, &ConfirmationError{Reason: ReasonValidation, Message: "amount must be positive"}
	}
	if strings.TrimSpace(req.Form.Date) == "" {
		return Authorization{}, &ConfirmationError{Reason: ReasonValidation, Message: "event date is required"}
	}
	return Authorization{ContractAddress: contractAddress()}, nil
}

// contractAddress returns a 20-byte hex address in the usual 0x form.
func contractAddress() string {
	a, b := uuid.New(), uuid.New()
	buf := append(a[:], b[:4]...)
	return "0x" + hex.EncodeToString(buf)
}

package handlers

import (
	"errors"
	"net/http"

	"flexispace/services/booking"
	"flexispace/services/catalog"
	"flexispace/services/listing"
	"flexispace/services/sessions"
	"flexispace/services/transaction"
	"flexispace/services/wizard"
	"flexispace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		verr *wizard.ValidationError
		ferr *wizard.FieldError
		perr *transaction.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONRuleError(c, http.StatusUnprocessableEntity, verr.Message, verr.Error(), string(verr.Rule))
	case errors.As(err, &ferr):
		utils.JSONError(c, http.StatusBadRequest, "invalid field", ferr.Error())
	case errors.Is(err, sessions.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "session not found or expired", err.Error())
	case errors.Is(err, catalog.ErrSpaceNotFound), errors.Is(err, catalog.ErrServiceNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, listing.ErrUnknownAmenity):
		utils.JSONError(c, http.StatusBadRequest, "unknown amenity", err.Error())
	case errors.Is(err, booking.ErrNotAtLastStep),
		errors.Is(err, listing.ErrNotAtLastStep),
		errors.Is(err, booking.ErrSessionLocked),
		errors.Is(err, transaction.ErrInvalidTransition),
		errors.Is(err, transaction.ErrClosed):
		utils.JSONError(c, http.StatusConflict, "not allowed in the current state", err.Error())
	case errors.As(err, &perr):
		getLogger(c).Error("Booking store unavailable", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "booking store unavailable", err.Error())
	default:
		getLogger(c).Error("Unhandled request error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

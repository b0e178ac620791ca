package handlers

import (
	"net/http"
	"strconv"

	"flexispace/services/booking"
	"flexispace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking wizard and its confirmation.
type BookingHandler struct {
	BookingSvc booking.BookingSessionService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

type initiateBookingRequest struct {
	SpaceID string `json:"spaceId" binding:"required"`
}

// fieldUpdateRequest sets one form field by its JSON path.
type fieldUpdateRequest struct {
	Path  string `json:"path" binding:"required"`
	Value any    `json:"value"`
}

// InitiateSession handles POST /api/booking/session.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var req initiateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	view, err := h.BookingSvc.InitiateSession(c.Request.Context(), req.SpaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSession(c *gin.Context) {
	view, err := h.BookingSvc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateField handles PATCH /api/booking/session/:sessionID/form.
func (h *BookingHandler) UpdateField(c *gin.Context) {
	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	view, err := h.BookingSvc.UpdateField(c.Request.Context(), c.Param("sessionID"), req.Path, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleService handles POST /api/booking/session/:sessionID/services/:serviceID.
func (h *BookingHandler) ToggleService(c *gin.Context) {
	view, err := h.BookingSvc.ToggleService(c.Request.Context(), c.Param("sessionID"), c.Param("serviceID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Next handles POST /api/booking/session/:sessionID/next. An invalid step is not an
// error: the view comes back with moved=false and the failing rule.
func (h *BookingHandler) Next(c *gin.Context) {
	view, err := h.BookingSvc.Next(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Back handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) Back(c *gin.Context) {
	view, err := h.BookingSvc.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GoTo handles POST /api/booking/session/:sessionID/step/:step.
func (h *BookingHandler) GoTo(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid step", err.Error())
		return
	}
	view, err := h.BookingSvc.GoTo(c.Request.Context(), c.Param("sessionID"), step)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Quote handles GET /api/booking/session/:sessionID/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	quote, err := h.BookingSvc.Quote(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ConfirmBooking handles POST /api/booking/session/:sessionID/confirm. The
// confirmation completes asynchronously; poll the session for its outcome.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	view, err := h.BookingSvc.ConfirmBooking(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.Logger.Info("Booking confirmation started", zap.String("sessionID", view.SessionID))
	c.JSON(http.StatusAccepted, view)
}

// RetryConfirmation handles POST /api/booking/session/:sessionID/retry.
func (h *BookingHandler) RetryConfirmation(c *gin.Context) {
	view, err := h.BookingSvc.RetryConfirmation(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	view, err := h.BookingSvc.CancelSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

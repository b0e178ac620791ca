package handlers

import (
	"net/http"

	"flexispace/models"
	"flexispace/services/loyalty"

	"github.com/gin-gonic/gin"
)

type dashboardResponse struct {
	Bookings []models.BookingRecord `json:"bookings"`
	Loyalty  loyalty.Summary        `json:"loyalty"`
}

// ListBookings handles GET /api/dashboard/bookings, newest first.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	records, err := h.BookingSvc.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Dashboard handles GET /api/dashboard: bookings plus the loyalty standing they earn.
func (h *BookingHandler) Dashboard(c *gin.Context) {
	records, err := h.BookingSvc.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardResponse{
		Bookings: records,
		Loyalty:  loyalty.Summarize(loyalty.PointsFor(records)),
	})
}

// LoyaltyTiers handles GET /api/loyalty/tiers.
func LoyaltyTiers(c *gin.Context) {
	c.JSON(http.StatusOK, loyalty.Tiers)
}

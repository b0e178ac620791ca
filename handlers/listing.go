package handlers

import (
	"net/http"
	"strconv"

	"flexispace/models"
	"flexispace/services/listing"
	"flexispace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListingHandler serves the host listing wizard.
type ListingHandler struct {
	ListingSvc listing.ListingSessionService
	Logger     *zap.Logger
}

func NewListingHandler(svc listing.ListingSessionService, logger *zap.Logger) *ListingHandler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &ListingHandler{ListingSvc: svc, Logger: logger}
}

// InitiateSession handles POST /api/listing/session.
func (h *ListingHandler) InitiateSession(c *gin.Context) {
	view, err := h.ListingSvc.InitiateSession(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/listing/session/:sessionID.
func (h *ListingHandler) GetSession(c *gin.Context) {
	view, err := h.ListingSvc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateField handles PATCH /api/listing/session/:sessionID/form.
func (h *ListingHandler) UpdateField(c *gin.Context) {
	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	view, err := h.ListingSvc.UpdateField(c.Request.Context(), c.Param("sessionID"), req.Path, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetImage handles PUT /api/listing/session/:sessionID/images/:index.
func (h *ListingHandler) SetImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid image index", err.Error())
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	view, err := h.ListingSvc.SetImage(c.Request.Context(), c.Param("sessionID"), index, req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddImageField handles POST /api/listing/session/:sessionID/images.
func (h *ListingHandler) AddImageField(c *gin.Context) {
	view, err := h.ListingSvc.AddImageField(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetAmenity handles PUT /api/listing/session/:sessionID/amenities/:amenity.
func (h *ListingHandler) SetAmenity(c *gin.Context) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	key := models.AmenityKey(c.Param("amenity"))
	view, err := h.ListingSvc.SetAmenity(c.Request.Context(), c.Param("sessionID"), key, req.Enabled)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Next handles POST /api/listing/session/:sessionID/next.
func (h *ListingHandler) Next(c *gin.Context) {
	view, err := h.ListingSvc.Next(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Back handles POST /api/listing/session/:sessionID/back.
func (h *ListingHandler) Back(c *gin.Context) {
	view, err := h.ListingSvc.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GoTo handles POST /api/listing/session/:sessionID/step/:step.
func (h *ListingHandler) GoTo(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid step", err.Error())
		return
	}
	view, err := h.ListingSvc.GoTo(c.Request.Context(), c.Param("sessionID"), step)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit handles POST /api/listing/session/:sessionID/submit.
func (h *ListingHandler) Submit(c *gin.Context) {
	res, err := h.ListingSvc.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.Logger.Info("Listing submitted", zap.String("listingID", res.Submission.ID))
	c.JSON(http.StatusCreated, res)
}

// ListSubmissions handles GET /api/listing/submissions.
func (h *ListingHandler) ListSubmissions(c *gin.Context) {
	subs, err := h.ListingSvc.ListSubmissions(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListSubmissions: failed to load listings", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "listing store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, subs)
}

package handlers

import (
	"net/http"

	"flexispace/services/catalog"
	"flexispace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAvailableServices handles GET /api/services.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	services, err := h.BookingSvc.GetAvailableServices()
	if err != nil {
		h.Logger.Error("GetAvailableServices: failed to fetch services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch services", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// SpaceHandler serves the read-only space catalog.
type SpaceHandler struct {
	Catalog *catalog.Catalog
}

func NewSpaceHandler(cat *catalog.Catalog) *SpaceHandler {
	return &SpaceHandler{Catalog: cat}
}

// SearchSpaces handles GET /api/spaces?q=&type=&guests=&minPrice=&maxPrice=&amenity=.
func (h *SpaceHandler) SearchSpaces(c *gin.Context) {
	var filter catalog.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid search filter", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Search(filter))
}

// GetSpace handles GET /api/spaces/:spaceID.
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	space, err := h.Catalog.Space(c.Param("spaceID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}

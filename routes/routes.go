package routes

import (
	"net/http"
	"time"

	"flexispace/handlers"
	"flexispace/middleware"
	"flexispace/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSpaceRoutes registers the read-only catalog endpoints.
func RegisterSpaceRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	r.GET("/spaces", hb.Spaces.SearchSpaces)
	r.GET("/spaces/:spaceID", hb.Spaces.GetSpace)
	r.GET("/services", hb.Booking.GetAvailableServices)
}

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/booking")
	{
		bookingGroup.POST("/session", hb.Booking.InitiateSession)
		bookingGroup.GET("/session/:sessionID", hb.Booking.GetSession)
		bookingGroup.PATCH("/session/:sessionID/form", hb.Booking.UpdateField)
		bookingGroup.POST("/session/:sessionID/services/:serviceID", hb.Booking.ToggleService)
		bookingGroup.POST("/session/:sessionID/next", hb.Booking.Next)
		bookingGroup.POST("/session/:sessionID/back", hb.Booking.Back)
		bookingGroup.POST("/session/:sessionID/step/:step", hb.Booking.GoTo)
		bookingGroup.GET("/session/:sessionID/quote", hb.Booking.Quote)
		bookingGroup.POST("/session/:sessionID/confirm", hb.Booking.ConfirmBooking)
		bookingGroup.POST("/session/:sessionID/retry", hb.Booking.RetryConfirmation)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelSession)
	}
}

// RegisterListingRoutes sets up the endpoints for the host listing wizard.
func RegisterListingRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	listingGroup := r.Group("/listing")
	{
		listingGroup.POST("/session", hb.Listing.InitiateSession)
		listingGroup.GET("/session/:sessionID", hb.Listing.GetSession)
		listingGroup.PATCH("/session/:sessionID/form", hb.Listing.UpdateField)
		listingGroup.POST("/session/:sessionID/images", hb.Listing.AddImageField)
		listingGroup.PUT("/session/:sessionID/images/:index", hb.Listing.SetImage)
		listingGroup.PUT("/session/:sessionID/amenities/:amenity", hb.Listing.SetAmenity)
		listingGroup.POST("/session/:sessionID/next", hb.Listing.Next)
		listingGroup.POST("/session/:sessionID/back", hb.Listing.Back)
		listingGroup.POST("/session/:sessionID/step/:step", hb.Listing.GoTo)
		listingGroup.POST("/session/:sessionID/submit", hb.Listing.Submit)
		listingGroup.GET("/submissions", hb.Listing.ListSubmissions)
	}
}

// RegisterDashboardRoutes registers the booking history and loyalty endpoints.
func RegisterDashboardRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	r.GET("/dashboard", hb.Booking.Dashboard)
	r.GET("/dashboard/bookings", hb.Booking.ListBookings)
	r.GET("/loyalty/tiers", handlers.LoyaltyTiers)
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))
	RegisterSpaceRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterListingRoutes(api, hb)
	RegisterDashboardRoutes(api, hb)
}

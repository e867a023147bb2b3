package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the booking core routes on the API group.
// All routes except availability require an authenticated player.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, authMiddleware gin.HandlerFunc) {
	holds := rg.Group("/holds")
	holds.Use(authMiddleware)
	{
		holds.POST("", controller.CreateHold)
		holds.POST("/:id/confirm", controller.ConfirmHold)
		holds.POST("/:id/cancel", controller.CancelHold)
	}

	bookings := rg.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.GET("", controller.GetPlayerBookings)
		bookings.GET("/:id", controller.GetBooking)
	}

	// Availability is a public read used by schedule displays.
	rg.GET("/availability", controller.GetAvailability)
}

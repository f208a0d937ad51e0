package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupCourtRoutes(protected *gin.RouterGroup, courtController *controllers.CourtController) {
	courts := protected.Group("/courts")
	{
		courts.POST("", courtController.CreateCourt)
		courts.GET("", courtController.SearchCourts)
		courts.GET("/:id/availability", courtController.GetCourtAvailability)
		courts.POST("/:id/book", courtController.BookCourt)
	}

	bookings := protected.Group("/bookings")
	{
		bookings.GET("", courtController.GetMyBookings)
		bookings.POST("/:id/cancel", courtController.CancelBooking)
	}
}

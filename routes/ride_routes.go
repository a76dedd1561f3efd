package routes

import (
	"rideboard/internal/handlers"
	"rideboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes sets up the ride-intent routes. Every route requires the
// bot token; the core has no public surface of its own.
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, botTokenSecret string) {
	groups := r.Group("/groups")
	groups.Use(middleware.BotAuthRequired(botTokenSecret))
	{
		groups.POST("/", rideHandler.CreateGroup)
		groups.GET("/:chat_id/schedule", rideHandler.GetSchedule)

		groups.POST("/:chat_id/rides", rideHandler.AddRide)
		groups.DELETE("/:chat_id/rides/:direction/:user_id", rideHandler.RemoveRide)
		groups.PUT("/:chat_id/rides/:direction/:user_id/full", rideHandler.SetRideFull)

		groups.POST("/:chat_id/sweep", rideHandler.Sweep)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupStatisticsRoutes(protected *gin.RouterGroup, statisticsController *controllers.StatisticsController) {
	statistics := protected.Group("/statistics")
	{
		statistics.GET("/earnings", statisticsController.GetEarnings)
		statistics.GET("/sports/:userId", statisticsController.GetSportsPlayed)
		statistics.GET("/businesses/:userId", statisticsController.GetBusinessesPlayed)
		statistics.POST("/activities", statisticsController.LogActivity)
		statistics.GET("/activities/:userId", statisticsController.GetActivities)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupPromotionRoutes(protected *gin.RouterGroup, promotionController *controllers.PromotionController) {
	promotions := protected.Group("/promotions")
	{
		promotions.POST("", promotionController.CreatePromotion)
		promotions.GET("", promotionController.ListPromotions)
		promotions.POST("/:id/claim", promotionController.ClaimPromotion)
		promotions.DELETE("/:id", promotionController.DeactivatePromotion)
	}

	referrals := protected.Group("/referrals")
	{
		referrals.GET("/code", promotionController.GetReferralCode)
		referrals.POST("/bookings", promotionController.RecordBooking)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupReviewRoutes(protected *gin.RouterGroup, reviewController *controllers.ReviewController) {
	reviews := protected.Group("/reviews")
	{
		reviews.POST("/:userId", reviewController.CreateReview)
		reviews.GET("/:userId", reviewController.GetUserReviews)
		reviews.PUT("/:reviewId/respond", reviewController.RespondToReview)
	}

	protected.POST("/business-reviews/:userId", reviewController.CreateBusinessReview)
}

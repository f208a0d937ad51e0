package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/controllers"
	"github.com/fit-lynq/api-go/middleware"
	"github.com/fit-lynq/api-go/repositories"
	"github.com/fit-lynq/api-go/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *services.Hub) {
	// Initialize services
	userRepo := repositories.NewUserRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	graphService := services.NewSocialGraphService(userRepo)
	ratingService := services.NewRatingService(userRepo, reviewRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db)
	followController := controllers.NewFollowController(db, graphService)
	reviewController := controllers.NewReviewController(db, ratingService)
	postController := controllers.NewPostController(db)
	courtController := controllers.NewCourtController(db)
	lobbyController := controllers.NewLobbyController(db)
	promotionController := controllers.NewPromotionController(db)
	statisticsController := controllers.NewStatisticsController(db)
	messageController := controllers.NewMessageController(db, hub)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)

		// Profile routes
		protected.GET("/profile/:username", profileController.GetProfile)
		protected.PUT("/profile", profileController.UpdateProfile)
		protected.PUT("/settings", profileController.UpdateSettings)
		protected.POST("/settings/deactivate", profileController.DeactivateAccount)
		protected.GET("/search/users", profileController.SearchUsers)

		// Setup other routes within the protected group
		SetupFollowRoutes(protected, followController)
		SetupReviewRoutes(protected, reviewController)
		SetupPostRoutes(protected, postController)
		SetupCourtRoutes(protected, courtController)
		SetupLobbyRoutes(protected, lobbyController)
		SetupPromotionRoutes(protected, promotionController)
		SetupStatisticsRoutes(protected, statisticsController)
		SetupMessageRoutes(protected, messageController)
		SetupUploadRoutes(protected, uploadController)
	}
}

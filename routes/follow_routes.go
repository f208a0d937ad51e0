package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupFollowRoutes(protected *gin.RouterGroup, followController *controllers.FollowController) {
	users := protected.Group("/users")
	{
		users.POST("/:userId/follow", followController.FollowUser)
		users.POST("/:userId/unfollow", followController.UnfollowUser)
		users.POST("/:userId/remove-follower", followController.RemoveFollower)
		users.GET("/:userId/follow-status", followController.GetFollowStatus)
	}

	// Block endpoints take the target in the body, not the path.
	protected.POST("/block", followController.BlockUser)
	protected.POST("/unblock", followController.UnblockUser)
	protected.GET("/blocked", followController.GetBlockedUsers)

	// Follower lists are keyed by username like the profile page.
	profile := protected.Group("/profile")
	{
		profile.GET("/:username/followers", followController.GetFollowers)
		profile.GET("/:username/following", followController.GetFollowing)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/like", postController.LikePost)
		posts.POST("/:id/comments", postController.CommentOnPost)
		posts.GET("/:id/comments", postController.GetComments)
	}

	protected.GET("/feed", postController.GetFeed)
	protected.GET("/users/:userId/posts", postController.GetUserPosts)
}

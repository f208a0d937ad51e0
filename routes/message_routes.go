package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupMessageRoutes(protected *gin.RouterGroup, messageController *controllers.MessageController) {
	messages := protected.Group("/messages")
	{
		messages.GET("", messageController.GetConversations)
		messages.GET("/:userId", messageController.GetConversation)
		messages.POST("/:userId", messageController.SendMessage)
	}

	protected.GET("/ws", messageController.ServeWS)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupLobbyRoutes(protected *gin.RouterGroup, lobbyController *controllers.LobbyController) {
	lobbies := protected.Group("/lobbies")
	{
		lobbies.POST("", lobbyController.CreateLobby)
		lobbies.GET("", lobbyController.ListLobbies)
		lobbies.GET("/:id", lobbyController.GetLobby)
		lobbies.POST("/:id/join", lobbyController.JoinLobby)
		lobbies.POST("/:id/leave", lobbyController.LeaveLobby)
		lobbies.POST("/:id/confirm", lobbyController.ConfirmLobby)
	}
}

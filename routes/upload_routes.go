package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fit-lynq/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/media", uploadController.GetMediaUploadURL)
		uploads.POST("/avatar", uploadController.GetAvatarUploadURL)
		uploads.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
		uploads.DELETE("/file/:key", uploadController.DeleteUpload)
	}
}

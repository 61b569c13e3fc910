package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/avatar", uploadController.GetAvatarUploadURL)
		uploads.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
		uploads.POST("/courses/:id/cover", uploadController.GetCourseCoverUploadURL)
	}
}

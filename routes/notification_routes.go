package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationController.GetNotifications)
		notifications.PUT("/read-all", notificationController.MarkAllRead)
		notifications.PUT("/:id/read", notificationController.MarkRead)
		notifications.DELETE("/:id", notificationController.DeleteNotification)
	}
}

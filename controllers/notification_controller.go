package controllers

import (
	"net/http"

	"github.com/codely-ge/api-go/services"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetNotifications godoc
// @Summary List the caller's notifications
// @Description Newest first, capped at 50, with the derived unread count
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	limit := utils.ParseIntQuery(c, "limit", services.DefaultNotificationLimit)

	notifications, err := nc.Notifications.List(user.UserID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	unread, err := nc.Notifications.UnreadCount(user.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Idempotent; marking an already-read notification is a no-op
// @Tags notifications
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	id, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}
	if err := nc.Notifications.MarkRead(id, user.UserID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications/read-all [put]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := nc.Notifications.MarkAllRead(user.UserID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification godoc
// @Summary Delete one of the caller's notifications
// @Tags notifications
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/{id} [delete]
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	id, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}
	if err := nc.Notifications.Delete(id, user.UserID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

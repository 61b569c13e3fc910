package services

import (
	"errors"

	"github.com/codely-ge/api-go/models"
	"gorm.io/gorm"
)

const DefaultNotificationLimit = 50

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// List returns the user's notifications newest-first, capped at limit.
func (ns *NotificationService) List(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > DefaultNotificationLimit {
		limit = DefaultNotificationLimit
	}

	notifications := []models.Notification{}
	if err := ns.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return notifications, nil
}

// UnreadCount is always derived by query, never cached.
func (ns *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := ns.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return count, nil
}

// MarkRead marks one notification read. Marking an already-read notification
// is a no-op. Missing and foreign rows both come back as NotFoundError so a
// caller cannot probe other users' notifications.
func (ns *NotificationService) MarkRead(id, userID uint) error {
	var notification models.Notification
	if err := ns.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "notification"}
		}
		return &PersistenceError{Err: err}
	}

	if notification.IsRead {
		return nil
	}

	if err := ns.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read in one UPDATE.
func (ns *NotificationService) MarkAllRead(userID uint) error {
	if err := ns.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// Delete removes a notification owned by the user.
func (ns *NotificationService) Delete(id, userID uint) error {
	result := ns.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return &PersistenceError{Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "notification"}
	}
	return nil
}

// Create enqueues a notification for a user. Producers (achievement unlocks,
// announcements, reply events) call this and get persistence failures back
// synchronously.
func (ns *NotificationService) Create(userID uint, notificationType models.NotificationType, title, message string) (*models.Notification, error) {
	if !models.ValidNotificationType(notificationType) {
		return nil, &ValidationError{Msg: "unknown notification type"}
	}
	if title == "" {
		return nil, &ValidationError{Msg: "notification title is required"}
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if err := ns.DB.Create(&notification).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return &notification, nil
}

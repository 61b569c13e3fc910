package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeInfo         NotificationType = "info"
	NotificationTypeAchievement  NotificationType = "achievement"
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeReply        NotificationType = "reply"
	NotificationTypeBestAnswer   NotificationType = "best_answer"
)

// ValidNotificationType reports whether t belongs to the closed type set.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeAchievement, NotificationTypeAnnouncement,
		NotificationTypeReply, NotificationTypeBestAnswer:
		return true
	}
	return false
}

type Notification struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // receiver
	User      User             `json:"-" gorm:"foreignKey:UserID"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
}

package models

import (
	"time"
)

type XPLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Action    string    `gorm:"not null;type:varchar(50)" json:"action"` // "lesson_completed", "comment_posted", etc.
	Amount    int       `gorm:"not null" json:"amount"`
	LessonID  *uint     `gorm:"index" json:"lesson_id"` // set when the XP came from a lesson
}

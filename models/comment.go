package models

import (
	"time"
)

type Comment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LessonID     uint      `gorm:"not null;index" json:"lesson_id"`
	Lesson       Lesson    `json:"-" gorm:"foreignKey:LessonID"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `json:"user" gorm:"foreignKey:UserID"`
	ParentID     *uint     `gorm:"index" json:"parent_id"` // nil for top-level comments
	Content      string    `gorm:"type:text;not null" json:"content"`
	IsBestAnswer bool      `gorm:"default:false" json:"is_best_answer"`
	IsPinned     bool      `gorm:"default:false" json:"is_pinned"`

	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
}

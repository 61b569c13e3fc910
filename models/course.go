package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	CoverURL    string         `json:"cover_url"`
	Language    string         `gorm:"size:30" json:"language"` // python, javascript, ...
	Difficulty  string         `gorm:"size:20;default:'beginner'" json:"difficulty"` // beginner, intermediate, advanced
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsPublished bool           `gorm:"default:false" json:"is_published"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       User           `json:"owner" gorm:"foreignKey:OwnerID"`
	Lessons     []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
}

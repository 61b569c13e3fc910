package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Lesson struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	Course      Course         `json:"-" gorm:"foreignKey:CourseID"`
	Title       string         `gorm:"not null" json:"title"`
	Position    int            `gorm:"not null;default:0" json:"position"` // order inside the course
	Content     string         `gorm:"type:text" json:"content"`           // markdown body
	StarterCode string         `gorm:"type:text" json:"starter_code"`      // preloaded into the editor
	Hints       pq.StringArray `json:"hints" gorm:"type:text[]"`
	XPReward    int            `gorm:"default:10" json:"xp_reward"`
	Comments    []Comment      `json:"-" gorm:"foreignKey:LessonID"`
}

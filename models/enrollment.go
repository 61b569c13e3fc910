package models

import (
	"time"
)

type Enrollment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index:idx_enroll_user_course,unique" json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CourseID  uint      `gorm:"not null;index:idx_enroll_user_course,unique" json:"course_id"`
	Course    Course    `json:"-" gorm:"foreignKey:CourseID"`
}

type LessonCompletion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index:idx_complete_user_lesson,unique" json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	LessonID  uint      `gorm:"not null;index:idx_complete_user_lesson,unique" json:"lesson_id"`
	Lesson    Lesson    `json:"-" gorm:"foreignKey:LessonID"`
}

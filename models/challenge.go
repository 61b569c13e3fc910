package models

import (
	"time"

	"gorm.io/gorm"
)

type DailyChallenge struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Date        time.Time      `gorm:"uniqueIndex;not null" json:"date"` // midnight UTC of the day it runs
	Title       string         `gorm:"not null" json:"title"`
	Prompt      string         `gorm:"type:text" json:"prompt"`
	Language    string         `gorm:"size:30" json:"language"`
	XPReward    int            `gorm:"default:25" json:"xp_reward"`
}

type ChallengeCompletion struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UserID      uint           `gorm:"not null;index:idx_challenge_user,unique" json:"user_id"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	ChallengeID uint           `gorm:"not null;index:idx_challenge_user,unique" json:"challenge_id"`
	Challenge   DailyChallenge `json:"-" gorm:"foreignKey:ChallengeID"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `gorm:"default:null" json:"-"` // nil for OAuth-only accounts
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	GoogleID      *string        `gorm:"index;default:null" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"` // email, google
	Role          Role           `json:"role" gorm:"foreignKey:RoleID"`
	RoleID        uint           `json:"role_id"`
	XP            int64          `gorm:"default:0" json:"xp"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
	Comments      []Comment      `json:"-" gorm:"foreignKey:UserID"`
	EmailVerified bool           `json:"email_verified"`
}

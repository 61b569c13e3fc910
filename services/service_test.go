package services

import (
	"fmt"
	"testing"

	"github.com/codely-ge/api-go/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonCompletion{},
		&models.Comment{},
		&models.Notification{},
		&models.XPLog{},
		&models.DailyChallenge{},
		&models.ChallengeCompletion{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestLesson(t *testing.T, db *gorm.DB, ownerID uint) *models.Lesson {
	t.Helper()

	course := models.Course{
		Title:       "Python Basics",
		Slug:        fmt.Sprintf("python-basics-%s", t.Name()),
		Language:    "python",
		IsPublished: true,
		OwnerID:     ownerID,
	}
	require.NoError(t, db.Create(&course).Error)

	lesson := models.Lesson{
		CourseID: course.ID,
		Title:    "Variables",
		Position: 1,
		XPReward: 10,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return &lesson
}

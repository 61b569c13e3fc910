package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/codely-ge/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=codely port=5432 sslmode=disable TimeZone=Asia/Tbilisi"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := MigrateAndSeed(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

// MigrateAndSeed runs the automigration and the idempotent seeds. Separated
// from InitDB so tests can run it against their own database.
func MigrateAndSeed(db *gorm.DB) error {
	err := db.AutoMigrate(
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
	if err != nil {
		return err
	}

	seedRoles(db)
	seedTodayChallenge(db)

	return nil
}

func seedRoles(db *gorm.DB) {
	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count > 0 {
		return
	}

	roles := []models.Role{
		{Name: models.RoleStudent},
		{Name: models.RoleInstructor},
		{Name: models.RoleAdmin},
	}
	for _, role := range roles {
		if err := db.Create(&role).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", role.Name, err)
		}
	}
}

// seedTodayChallenge makes sure a fresh database has a challenge for today so
// the challenge endpoints are usable right after boot.
func seedTodayChallenge(db *gorm.DB) {
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	db.Model(&models.DailyChallenge{}).Where("date = ?", day).Count(&count)
	if count > 0 {
		return
	}

	challenge := models.DailyChallenge{
		Date:     day,
		Title:    "FizzBuzz",
		Prompt:   "Print the numbers 1 to 100, replacing multiples of 3 with Fizz, multiples of 5 with Buzz, and multiples of both with FizzBuzz.",
		Language: "python",
		XPReward: 25,
	}
	if err := db.Create(&challenge).Error; err != nil {
		log.Printf("Failed to seed daily challenge: %v", err)
	}
}

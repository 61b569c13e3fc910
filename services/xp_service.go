package services

import (
	"time"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/types"
	"gorm.io/gorm"
)

type XPService struct {
	DB *gorm.DB
}

func NewXPService(db *gorm.DB) *XPService {
	return &XPService{DB: db}
}

// Award writes an XP log entry and moves the user's balance in one
// transaction so the log and the balance never drift apart.
func (xs *XPService) Award(userID uint, amount int, action string, lessonID *uint) error {
	err := xs.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.XPLog{
			UserID:   userID,
			Amount:   amount,
			Action:   action,
			LessonID: lessonID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error
	})
	if err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// AwardCommentXP awards comment XP unless the user already hit the daily cap.
// Returns whether anything was awarded.
func (xs *XPService) AwardCommentXP(userID uint) (bool, error) {
	count, err := xs.countToday(userID, types.ActionCommentPosted)
	if err != nil {
		return false, err
	}
	if count >= types.DailyCommentXPLimit {
		return false, nil
	}
	if err := xs.Award(userID, types.XP_COMMENT_POSTED, types.ActionCommentPosted, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (xs *XPService) countToday(userID uint, action string) (int64, error) {
	start, end := todayRange()
	var count int64
	if err := xs.DB.Model(&models.XPLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ? AND created_at < ?", userID, action, start, end).
		Count(&count).Error; err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return count, nil
}

// DailyActivity sums XP per calendar day over the last `days` days, oldest
// first. Days without activity are present with a zero total so the frontend
// heatmap gets a dense series.
type DayActivity struct {
	Date string `json:"date"` // YYYY-MM-DD
	XP   int    `json:"xp"`
}

func (xs *XPService) DailyActivity(userID uint, days int) ([]DayActivity, error) {
	if days <= 0 || days > 366 {
		days = 90
	}

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	var logs []models.XPLog
	if err := xs.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	totals := make(map[string]int, days)
	for _, entry := range logs {
		totals[entry.CreatedAt.Format("2006-01-02")] += entry.Amount
	}

	activity := make([]DayActivity, 0, days)
	for d := 0; d < days; d++ {
		key := since.AddDate(0, 0, d).Format("2006-01-02")
		activity = append(activity, DayActivity{Date: key, XP: totals[key]})
	}

	return activity, nil
}

func todayRange() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

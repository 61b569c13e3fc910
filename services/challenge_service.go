package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/types"
	"gorm.io/gorm"
)

type ChallengeService struct {
	DB            *gorm.DB
	XP            *XPService
	Notifications *NotificationService
}

func NewChallengeService(db *gorm.DB, xp *XPService, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{DB: db, XP: xp, Notifications: notifications}
}

// Today returns the challenge scheduled for the current UTC day.
func (chs *ChallengeService) Today() (*models.DailyChallenge, error) {
	day := utcMidnight(time.Now())

	var challenge models.DailyChallenge
	if err := chs.DB.Where("date = ?", day).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "daily challenge"}
		}
		return nil, &PersistenceError{Err: err}
	}

	return &challenge, nil
}

// Complete records a challenge completion once per user per challenge,
// awarding its XP and an achievement notification on the first call.
// Repeat calls are a no-op reported to the caller.
func (chs *ChallengeService) Complete(challengeID, userID uint) (alreadyDone bool, err error) {
	var challenge models.DailyChallenge
	if err := chs.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &NotFoundError{Resource: "daily challenge"}
		}
		return false, &PersistenceError{Err: err}
	}

	var count int64
	if err := chs.DB.Model(&models.ChallengeCompletion{}).
		Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
		Count(&count).Error; err != nil {
		return false, &PersistenceError{Err: err}
	}
	if count > 0 {
		return true, nil
	}

	completion := models.ChallengeCompletion{UserID: userID, ChallengeID: challenge.ID}
	if err := chs.DB.Create(&completion).Error; err != nil {
		return false, &PersistenceError{Err: err}
	}

	if err := chs.XP.Award(userID, challenge.XPReward, types.ActionChallengeCompleted, nil); err != nil {
		return false, err
	}

	_, _ = chs.Notifications.Create(userID, models.NotificationTypeAchievement,
		"Daily challenge completed",
		fmt.Sprintf("You solved \"%s\" and earned %d XP.", challenge.Title, challenge.XPReward))

	return false, nil
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

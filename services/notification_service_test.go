package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/codely-ge/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListNewestFirstAndCapped(t *testing.T) {
	db := setupTestDB(t)
	ns := NewNotificationService(db)

	user := createTestUser(t, db, "reader")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultNotificationLimit+5; i++ {
		n := models.Notification{
			UserID:    user.ID,
			Type:      models.NotificationTypeInfo,
			Title:     fmt.Sprintf("notification %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&n).Error)
	}

	notifications, err := ns.List(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, notifications, DefaultNotificationLimit)
	assert.Equal(t, fmt.Sprintf("notification %d", DefaultNotificationLimit+4), notifications[0].Title)

	notifications, err = ns.List(user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)

	// Requests above the cap are clamped back to it.
	notifications, err = ns.List(user.ID, 500)
	require.NoError(t, err)
	assert.Len(t, notifications, DefaultNotificationLimit)
}

func TestNotificationListEmpty(t *testing.T) {
	db := setupTestDB(t)
	ns := NewNotificationService(db)

	user := createTestUser(t, db, "lonely")

	notifications, err := ns.List(user.ID, 10)
	require.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestUnreadCountFollowsMutations(t *testing.T) {
	db := setupTestDB(t)
	ns := NewNotificationService(db)

	user := createTestUser(t, db, "counter")

	var created []models.Notification
	for i := 0; i < 3; i++ {
		n, err := ns.Create(user.ID, models.NotificationTypeInfo, fmt.Sprintf("n%d", i), "")
		require.NoError(t, err)
		created = append(created, *n)
	}

	count, err := ns.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, ns.MarkRead(created[0].ID, user.ID))
	count, err = ns.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Marking the same notification again changes nothing.
	require.NoError(t, ns.MarkRead(created[0].ID, user.ID))
	count, err = ns.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, ns.Delete(created[1].ID, user.ID))
	count, err = ns.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, ns.MarkAllRead(user.ID))
	count, err = ns.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	ns := NewNotificationService(db)

	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")

	n, err := ns.Create(owner.ID, models.NotificationTypeAchievement, "well done", "you did it")
	require.NoError(t, err)

	// A missing row and someone else's row are indistinguishable.
	var notFound *NotFoundError
	require.ErrorAs(t, ns.MarkRead(n.ID, stranger.ID), &notFound)
	require.ErrorAs(t, ns.MarkRead(99999, stranger.ID), &notFound)
	require.ErrorAs(t, ns.Delete(n.ID, stranger.ID), &notFound)
	require.ErrorAs(t, ns.Delete(99999, stranger.ID), &notFound)

	// The owner's row is untouched.
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.False(t, reloaded.IsRead)
}

func TestNotificationCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	ns := NewNotificationService(db)

	user := createTestUser(t, db, "target")

	var validation *ValidationError

	_, err := ns.Create(user.ID, models.NotificationType("shout"), "hey", "")
	require.ErrorAs(t, err, &validation)

	_, err = ns.Create(user.ID, models.NotificationTypeInfo, "", "no title")
	require.ErrorAs(t, err, &validation)

	n, err := ns.Create(user.ID, models.NotificationTypeAnnouncement, "course update", "new lesson published")
	require.NoError(t, err)
	assert.False(t, n.IsRead)
}

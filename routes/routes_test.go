package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codely-ge/api-go/config"
	"github.com/codely-ge/api-go/models"
)

const testJWTSecret = "routes-test-secret"

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", testJWTSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateAndSeed(db))

	router := gin.New()
	SetupRoutes(router, db)
	return router, db
}

func createUserWithRole(t *testing.T, db *gorm.DB, username, roleName string) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)

	user := models.User{
		Username: username,
		Email:    username + "@codely.ge",
		RoleID:   role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	user.Role = role
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": float64(user.ID),
		"role":    user.Role.Name,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createPublishedLesson(t *testing.T, db *gorm.DB, ownerID uint) *models.Lesson {
	t.Helper()

	course := models.Course{
		Title:       "Go for Beginners",
		Slug:        "go-for-beginners-" + t.Name(),
		Language:    "go",
		IsPublished: true,
		OwnerID:     ownerID,
	}
	require.NoError(t, db.Create(&course).Error)

	lesson := models.Lesson{CourseID: course.ID, Title: "Variables", Position: 1, XPReward: 10}
	require.NoError(t, db.Create(&lesson).Error)
	return &lesson
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/register", gin.H{
		"username": "tamar",
		"email":    "tamar@codely.ge",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate email is rejected.
	w = doRequest(t, router, http.MethodPost, "/api/register", gin.H{
		"username": "tamar2",
		"email":    "tamar@codely.ge",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/login", gin.H{
		"email":    "tamar@codely.ge",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	w = doRequest(t, router, http.MethodPost, "/api/login", gin.H{
		"email":    "tamar@codely.ge",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)

	user := createUserWithRole(t, db, "nino", models.RoleStudent)
	stranger := createUserWithRole(t, db, "gio", models.RoleStudent)

	var first models.Notification
	for i := 0; i < 3; i++ {
		n := models.Notification{
			UserID: user.ID,
			Type:   models.NotificationTypeInfo,
			Title:  fmt.Sprintf("notification %d", i),
		}
		require.NoError(t, db.Create(&n).Error)
		if i == 0 {
			first = n
		}
	}

	// No token, no access.
	w := doRequest(t, router, http.MethodGet, "/api/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := tokenFor(t, user)

	w = doRequest(t, router, http.MethodGet, "/api/notifications", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["notifications"], 3)
	assert.EqualValues(t, 3, body["unread_count"])

	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", first.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/notifications", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["unread_count"])

	// Another user cannot touch these rows; probing looks like a miss.
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", first.ID), nil, tokenFor(t, stranger))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/notifications/read-all", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/notifications", nil, token)
	assert.EqualValues(t, 0, decodeBody(t, w)["unread_count"])

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", first.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", first.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)

	instructor := createUserWithRole(t, db, "teona", models.RoleInstructor)
	student := createUserWithRole(t, db, "luka", models.RoleStudent)
	lesson := createPublishedLesson(t, db, instructor.ID)

	studentToken := tokenFor(t, student)
	instructorToken := tokenFor(t, instructor)

	w := doRequest(t, router, http.MethodPost, "/api/comments", gin.H{
		"lessonId": lesson.ID,
		"content":  "what does := do?",
	}, studentToken)
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := uint(decodeBody(t, w)["id"].(float64))

	// Missing lesson maps to 404.
	w = doRequest(t, router, http.MethodPost, "/api/comments", gin.H{
		"lessonId": 9999,
		"content":  "hello?",
	}, studentToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Blank content never reaches the thread.
	w = doRequest(t, router, http.MethodPost, "/api/comments", gin.H{
		"lessonId": lesson.ID,
		"content":  "",
	}, studentToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Students cannot pick the best answer.
	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/comments/%d/best-answer", commentID), nil, studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/comments/%d/best-answer", commentID), nil, instructorToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/comments/lesson/%d", lesson.ID), nil, studentToken)
	require.Equal(t, http.StatusOK, w.Code)

	var thread []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
	require.Len(t, thread, 1)
	assert.Equal(t, true, thread[0]["is_best_answer"])

	// Best-answer XP reached the author.
	var author models.User
	require.NoError(t, db.First(&author, student.ID).Error)
	assert.Greater(t, author.XP, int64(0))

	// Only the author or an admin deletes a comment.
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, instructorToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, studentToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedIDsAnswerBadRequest(t *testing.T) {
	router, db := setupTestRouter(t)

	student := createUserWithRole(t, db, "dato", models.RoleStudent)
	token := tokenFor(t, student)

	w := doRequest(t, router, http.MethodGet, "/api/comments/lesson/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/notifications/abc/read", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/comments/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCommentSurvivesXPFailure(t *testing.T) {
	router, db := setupTestRouter(t)

	instructor := createUserWithRole(t, db, "eka", models.RoleInstructor)
	student := createUserWithRole(t, db, "beka", models.RoleStudent)
	lesson := createPublishedLesson(t, db, instructor.ID)

	// Break the XP log storage; the comment is persisted before the award
	// runs, so posting must still answer 201.
	require.NoError(t, db.Migrator().DropTable(&models.XPLog{}))

	w := doRequest(t, router, http.MethodPost, "/api/comments", gin.H{
		"lessonId": lesson.ID,
		"content":  "still here",
	}, tokenFor(t, student))
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("lesson_id = ?", lesson.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCourseListEnvelope(t *testing.T) {
	router, db := setupTestRouter(t)

	instructor := createUserWithRole(t, db, "keti", models.RoleInstructor)
	createPublishedLesson(t, db, instructor.ID)
	token := tokenFor(t, instructor)

	w := doRequest(t, router, http.MethodGet, "/api/courses", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 1)

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, pagination["currentPage"])
	assert.EqualValues(t, 1, pagination["totalItems"])
}

func TestEnrollmentAndCompletionIdempotent(t *testing.T) {
	router, db := setupTestRouter(t)

	instructor := createUserWithRole(t, db, "mariam", models.RoleInstructor)
	student := createUserWithRole(t, db, "irakli", models.RoleStudent)
	lesson := createPublishedLesson(t, db, instructor.ID)

	// A second lesson keeps the course-finished bonus out of the way.
	second := models.Lesson{CourseID: lesson.CourseID, Title: "Loops", Position: 2, XPReward: 10}
	require.NoError(t, db.Create(&second).Error)

	token := tokenFor(t, student)

	enrollPath := fmt.Sprintf("/api/courses/%d/enroll", lesson.CourseID)
	w := doRequest(t, router, http.MethodPost, enrollPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, enrollPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Already enrolled", decodeBody(t, w)["message"])

	var enrollments int64
	require.NoError(t, db.Model(&models.Enrollment{}).Where("user_id = ?", student.ID).Count(&enrollments).Error)
	assert.EqualValues(t, 1, enrollments)

	completePath := fmt.Sprintf("/api/lessons/%d/complete", lesson.ID)
	w = doRequest(t, router, http.MethodPost, completePath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, decodeBody(t, w)["xp_awarded"])

	w = doRequest(t, router, http.MethodPost, completePath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["xp_awarded"])

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.EqualValues(t, 10, reloaded.XP)
}

func TestChallengeEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)

	student := createUserWithRole(t, db, "sandro", models.RoleStudent)
	token := tokenFor(t, student)

	// MigrateAndSeed schedules a challenge for today.
	w := doRequest(t, router, http.MethodGet, "/api/challenges/today", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var challenge models.DailyChallenge
	require.NoError(t, db.First(&challenge).Error)

	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/challenges/%d/complete", challenge.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.EqualValues(t, challenge.XPReward, reloaded.XP)
}

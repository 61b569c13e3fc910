package controllers

import (
	"fmt"
	"net/http"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/services"
	"github.com/codely-ge/api-go/types"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonController struct {
	DB            *gorm.DB
	XP            *services.XPService
	Notifications *services.NotificationService
}

func NewLessonController(db *gorm.DB, xp *services.XPService, notifications *services.NotificationService) *LessonController {
	return &LessonController{DB: db, XP: xp, Notifications: notifications}
}

// GetLesson godoc
// @Summary Get a lesson with its content, starter code and hints
// @Tags lessons
// @Produce json
// @Param id path integer true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id} [get]
func (lc *LessonController) GetLesson(c *gin.Context) {
	user := utils.GetUser(c)

	lessonID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := lc.DB.Preload("Course").First(&lesson, lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if !lesson.Course.IsPublished && (user == nil || (user.UserID != lesson.Course.OwnerID && !user.IsAdmin())) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var completed bool
	if user != nil {
		var count int64
		lc.DB.Model(&models.LessonCompletion{}).
			Where("user_id = ? AND lesson_id = ?", user.UserID, lesson.ID).
			Count(&count)
		completed = count > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":    lesson,
		"completed": completed,
	})
}

type LessonInput struct {
	Title       string   `json:"title" binding:"required"`
	Position    int      `json:"position"`
	Content     string   `json:"content"`
	StarterCode string   `json:"starterCode"`
	Hints       []string `json:"hints"`
	XPReward    int      `json:"xpReward"`
}

// CreateLesson godoc
// @Summary Add a lesson to a course (owner or admin)
// @Tags lessons
// @Accept json
// @Produce json
// @Param courseId path integer true "Course ID"
// @Success 201 {object} models.Lesson
// @Router /courses/{courseId}/lessons [post]
func (lc *LessonController) CreateLesson(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	courseID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var course models.Course
	if err := lc.DB.First(&course, courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := models.Lesson{
		CourseID:    course.ID,
		Title:       input.Title,
		Position:    input.Position,
		Content:     input.Content,
		StarterCode: input.StarterCode,
		Hints:       pq.StringArray(input.Hints),
		XPReward:    input.XPReward,
	}
	if lesson.XPReward <= 0 {
		lesson.XPReward = types.XP_LESSON_COMPLETED
	}

	if err := lc.DB.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson (course owner or admin)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path integer true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Router /lessons/{id} [put]
func (lc *LessonController) UpdateLesson(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	lessonID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := lc.DB.Preload("Course").First(&lesson, lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if lesson.Course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":        input.Title,
		"position":     input.Position,
		"content":      input.Content,
		"starter_code": input.StarterCode,
		"hints":        pq.StringArray(input.Hints),
	}
	if input.XPReward > 0 {
		updates["xp_reward"] = input.XPReward
	}

	if err := lc.DB.Model(&lesson).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update lesson"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson with its comments and completions
// @Tags lessons
// @Produce json
// @Param id path integer true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id} [delete]
func (lc *LessonController) DeleteLesson(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	lessonID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := lc.DB.Preload("Course").First(&lesson, lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if lesson.Course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.LessonCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed, awarding XP once
// @Description Idempotent; finishing the last lesson of a course also grants the course bonus
// @Tags lessons
// @Produce json
// @Param id path integer true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Router /lessons/{id}/complete [post]
func (lc *LessonController) CompleteLesson(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	lessonID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := lc.DB.Preload("Course").First(&lesson, lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	// The unique index on (user_id, lesson_id) decides idempotency, so a
	// repeat request, concurrent or not, ends up on the already-done path.
	completion := models.LessonCompletion{UserID: user.UserID, LessonID: lesson.ID}
	result := lc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record completion"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"completed": true, "xp_awarded": 0, "message": "Lesson already completed"})
		return
	}

	if err := lc.XP.Award(user.UserID, lesson.XPReward, types.ActionLessonCompleted, &lesson.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	awarded := lesson.XPReward
	if lc.courseFinished(user.UserID, lesson.CourseID) {
		if err := lc.XP.Award(user.UserID, types.XP_COURSE_FINISHED, types.ActionCourseFinished, nil); err == nil {
			awarded += types.XP_COURSE_FINISHED
			_, _ = lc.Notifications.Create(user.UserID, models.NotificationTypeAchievement,
				"Course completed",
				fmt.Sprintf("You finished every lesson of \"%s\" and earned a %d XP bonus.", lesson.Course.Title, types.XP_COURSE_FINISHED))
		}
	}

	c.JSON(http.StatusOK, gin.H{"completed": true, "xp_awarded": awarded})
}

// courseFinished reports whether the user has now completed every lesson of
// the course.
func (lc *LessonController) courseFinished(userID, courseID uint) bool {
	var lessonCount int64
	lc.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&lessonCount)
	if lessonCount == 0 {
		return false
	}

	var completedCount int64
	lc.DB.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Count(&completedCount)

	return completedCount >= lessonCount
}

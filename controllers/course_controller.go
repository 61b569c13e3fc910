package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/services"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseController struct {
	DB            *gorm.DB
	Notifications *services.NotificationService
}

func NewCourseController(db *gorm.DB, notifications *services.NotificationService) *CourseController {
	return &CourseController{DB: db, Notifications: notifications}
}

type CourseQuery struct {
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=20" binding:"min=1,max=50"`
	Language   string `form:"language"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// GetCourses godoc
// @Summary Browse published courses
// @Tags courses
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20, max: 50)"
// @Param language query string false "Filter by programming language"
// @Param difficulty query string false "Filter by difficulty"
// @Success 200 {object} StandardResponse
// @Router /courses [get]
func (cc *CourseController) GetCourses(c *gin.Context) {
	var query CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseQuery := cc.DB.Model(&models.Course{}).Where("is_published = ?", true)
	if query.Language != "" {
		baseQuery = baseQuery.Where("language = ?", query.Language)
	}
	if query.Difficulty != "" {
		baseQuery = baseQuery.Where("difficulty = ?", query.Difficulty)
	}

	var total int64
	baseQuery.Count(&total)

	var courses []models.Course
	offset := (query.Page - 1) * query.PageSize
	if err := baseQuery.Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.PageSize).
		Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching courses"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    courses,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
		},
	})
}

// GetCourseDetail godoc
// @Summary Get a course with its lessons ordered by position
// @Tags courses
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /courses/{id} [get]
func (cc *CourseController) GetCourseDetail(c *gin.Context) {
	courseID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	user := utils.GetUser(c)

	var course models.Course
	err := cc.DB.Preload("Owner").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		First(&course, courseID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	// Unpublished courses are visible only to their owner and admins.
	if !course.IsPublished && (user == nil || (user.UserID != course.OwnerID && !user.IsAdmin())) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var enrolled bool
	if user != nil {
		var count int64
		cc.DB.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", user.UserID, course.ID).
			Count(&count)
		enrolled = count > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"course":   course,
		"enrolled": enrolled,
	})
}

type CourseInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Language    string   `json:"language" binding:"required"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags        []string `json:"tags"`
	CoverURL    string   `json:"coverUrl"`
	IsPublished bool     `json:"isPublished"`
}

// CreateCourse godoc
// @Summary Create a course (instructor or admin)
// @Tags courses
// @Accept json
// @Produce json
// @Success 201 {object} models.Course
// @Router /courses [post]
func (cc *CourseController) CreateCourse(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	if !user.IsInstructor() && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only instructors can create courses"})
		return
	}

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := slugify(input.Title)
	if slug == "" {
		// Georgian-only titles slugify to nothing; fall back to a random key.
		slug = uuid.New().String()[:8]
	}

	course := models.Course{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		Language:    input.Language,
		Difficulty:  input.Difficulty,
		Tags:        pq.StringArray(input.Tags),
		CoverURL:    input.CoverURL,
		IsPublished: input.IsPublished,
		OwnerID:     user.UserID,
	}
	if course.Difficulty == "" {
		course.Difficulty = "beginner"
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course with this title already exists"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary Update a course (owner or admin)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} models.Course
// @Router /courses/{id} [put]
func (cc *CourseController) UpdateCourse(c *gin.Context) {
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
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":        input.Title,
		"description":  input.Description,
		"language":     input.Language,
		"cover_url":    input.CoverURL,
		"is_published": input.IsPublished,
		"tags":         pq.StringArray(input.Tags),
	}
	if input.Difficulty != "" {
		updates["difficulty"] = input.Difficulty
	}

	if err := cc.DB.Model(&course).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary Delete a course with its lessons, comments and enrollments
// @Tags courses
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /courses/{id} [delete]
func (cc *CourseController) DeleteCourse(c *gin.Context) {
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
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&models.Lesson{}).
			Where("course_id = ?", course.ID).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.LessonCompletion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// EnrollCourse godoc
// @Summary Enroll the caller into a published course
// @Tags courses
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /courses/{id}/enroll [post]
func (cc *CourseController) EnrollCourse(c *gin.Context) {
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
	if err := cc.DB.Where("id = ? AND is_published = ?", courseID, true).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	// The unique index on (user_id, course_id) makes enrollment idempotent
	// even for concurrent duplicate requests.
	enrollment := models.Enrollment{UserID: user.UserID, CourseID: course.ID}
	result := cc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not enroll"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"enrolled": true, "message": "Already enrolled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrolled": true, "message": "Successfully enrolled"})
}

// AnnounceCourse godoc
// @Summary Send an announcement notification to every enrolled user
// @Tags courses
// @Accept json
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /courses/{id}/announcements [post]
func (cc *CourseController) AnnounceCourse(c *gin.Context) {
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
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	var input struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userIDs []uint
	if err := cc.DB.Model(&models.Enrollment{}).
		Where("course_id = ?", course.ID).
		Pluck("user_id", &userIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch enrollments"})
		return
	}

	title := fmt.Sprintf("%s: %s", course.Title, input.Title)
	sent := 0
	for _, id := range userIDs {
		if _, err := cc.Notifications.Create(id, models.NotificationTypeAnnouncement, title, input.Message); err == nil {
			sent++
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement sent", "recipients": sent})
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, slug)
}

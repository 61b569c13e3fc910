package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codely-ge/api-go/config"
	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/utils"
	"gorm.io/gorm"
)

const (
	maxImageSize     = 5 * 1024 * 1024 // 5 MB
	presignExpirySec = 900
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type ImageUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

func validImageUpload(req *ImageUploadRequest) error {
	if req.FileSize > maxImageSize {
		return fmt.Errorf("file too large (max 5MB)")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return fmt.Errorf("only image uploads are allowed")
	}
	return nil
}

func (uc *UploadController) presign(key, contentType string) (*PresignedURLResponse, error) {
	presignClient := s3.NewPresignClient(uc.R2Client)

	request, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(presignExpirySec) * time.Second
	})
	if err != nil {
		return nil, err
	}

	return &PresignedURLResponse{
		UploadURL: request.URL,
		FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: presignExpirySec,
	}, nil
}

// GetAvatarUploadURL godoc
// @Summary Presigned URL for an avatar upload
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /uploads/avatar [post]
func (uc *UploadController) GetAvatarUploadURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validImageUpload(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ext := filepath.Ext(req.FileName)
	key := fmt.Sprintf("avatars/%d/%s%s", user.UserID, uuid.New().String(), ext)

	response, err := uc.presign(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: response})
}

// ConfirmAvatarUpload godoc
// @Summary Point the caller's profile at an uploaded avatar
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /uploads/avatar/confirm [post]
func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The key must be one the caller was presigned for.
	if !strings.HasPrefix(input.Key, fmt.Sprintf("avatars/%d/", user.UserID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Key does not belong to you"})
		return
	}

	avatarURL := fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, input.Key)
	if err := uc.DB.Model(&models.User{}).
		Where("id = ?", user.UserID).
		Update("avatar", avatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update avatar"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Avatar updated",
		Data:    gin.H{"avatar": avatarURL},
	})
}

// GetCourseCoverUploadURL godoc
// @Summary Presigned URL for a course cover upload (owner or admin)
// @Tags uploads
// @Accept json
// @Produce json
// @Param id path integer true "Course ID"
// @Success 200 {object} StandardResponse
// @Router /uploads/courses/{id}/cover [post]
func (uc *UploadController) GetCourseCoverUploadURL(c *gin.Context) {
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
	if err := uc.DB.First(&course, courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.OwnerID != user.UserID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validImageUpload(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ext := filepath.Ext(req.FileName)
	key := fmt.Sprintf("covers/%d/%s%s", course.ID, uuid.New().String(), ext)

	response, err := uc.presign(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: response})
}

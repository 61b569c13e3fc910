package controllers

import (
	"net/http"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/services"
	"github.com/codely-ge/api-go/types"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB *gorm.DB
	XP *services.XPService
}

func NewActivityController(db *gorm.DB, xp *services.XPService) *ActivityController {
	return &ActivityController{DB: db, XP: xp}
}

// GetUserActivity godoc
// @Summary Per-day XP totals for the profile heatmap
// @Description Dense series, oldest day first; days without activity carry zero
// @Tags users
// @Produce json
// @Param id path integer true "User ID"
// @Param days query integer false "Window size in days (default: 90, max: 366)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/activity [get]
func (ac *ActivityController) GetUserActivity(c *gin.Context) {
	userID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := ac.DB.Select("id", "username", "xp").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	days := utils.ParseIntQuery(c, "days", 90)
	activity, err := ac.XP.DailyActivity(user.ID, days)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	level, toNext := types.LevelForXP(user.XP)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"xp":       user.XP,
			"level":    level,
			"xpToNext": toNext,
		},
		"activity": activity,
	})
}

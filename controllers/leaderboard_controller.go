package controllers

import (
	"net/http"
	"time"

	"github.com/codely-ge/api-go/models"
	"github.com/codely-ge/api-go/types"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB *gorm.DB
}

type LeaderboardQuery struct {
	TimeFilter string `form:"timeFilter" binding:"omitempty,oneof=all_time weekly monthly"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

type LeaderboardEntry struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
	Rank     int    `json:"rank"`
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// GetLeaderboard godoc
// @Summary XP leaderboard
// @Description All-time ranks come from the XP balance, weekly/monthly from windowed XP log sums
// @Tags leaderboard
// @Produce json
// @Param timeFilter query string false "Time filter: all_time, weekly, monthly"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 10)"
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if query.TimeFilter == "" {
		query.TimeFilter = "all_time"
	}

	baseQuery := lc.DB.Model(&models.User{})

	switch query.TimeFilter {
	case "weekly":
		startOfWeek := time.Now().AddDate(0, 0, -int(time.Now().Weekday()))
		startOfWeek = time.Date(startOfWeek.Year(), startOfWeek.Month(), startOfWeek.Day(), 0, 0, 0, 0, time.Local)
		baseQuery = lc.windowedQuery(startOfWeek)

	case "monthly":
		startOfMonth := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
		baseQuery = lc.windowedQuery(startOfMonth)

	default: // all_time
		baseQuery = baseQuery.
			Select("users.id as user_id, users.username, users.avatar, users.xp as xp").
			Order("users.xp DESC")
	}

	var total int64
	lc.DB.Model(&models.User{}).Count(&total)

	offset := (query.Page - 1) * query.PageSize

	var entries []LeaderboardEntry
	if err := baseQuery.Offset(offset).Limit(query.PageSize).Scan(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	for i := range entries {
		entries[i].Rank = offset + i + 1
		entries[i].Level, _ = types.LevelForXP(entries[i].XP)
	}

	response := gin.H{
		"leaderboard": entries,
		"timeFilter":  query.TimeFilter,
		"pagination": PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
		},
	}

	if user := utils.GetUser(c); user != nil {
		var me models.User
		if err := lc.DB.First(&me, user.UserID).Error; err == nil {
			level, toNext := types.LevelForXP(me.XP)
			response["me"] = gin.H{
				"xp":       me.XP,
				"level":    level,
				"xpToNext": toNext,
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

func (lc *LeaderboardController) windowedQuery(since time.Time) *gorm.DB {
	return lc.DB.Model(&models.User{}).
		Select("users.id as user_id, users.username, users.avatar, COALESCE(SUM(xp_logs.amount), 0) as xp").
		Joins("LEFT JOIN xp_logs ON users.id = xp_logs.user_id AND xp_logs.created_at >= ?", since).
		Group("users.id, users.username, users.avatar").
		Order("COALESCE(SUM(xp_logs.amount), 0) DESC")
}

package controllers

import (
	"net/http"

	"github.com/codely-ge/api-go/services"
	"github.com/codely-ge/api-go/utils"
	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Challenges *services.ChallengeService
}

func NewChallengeController(challenges *services.ChallengeService) *ChallengeController {
	return &ChallengeController{Challenges: challenges}
}

// GetTodayChallenge godoc
// @Summary Get today's daily challenge
// @Tags challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /challenges/today [get]
func (chc *ChallengeController) GetTodayChallenge(c *gin.Context) {
	challenge, err := chc.Challenges.Today()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// CompleteChallenge godoc
// @Summary Submit a daily challenge as solved
// @Description First completion awards XP and an achievement notification; repeats are no-ops
// @Tags challenges
// @Produce json
// @Param id path integer true "Challenge ID"
// @Success 200 {object} map[string]interface{}
// @Router /challenges/{id}/complete [post]
func (chc *ChallengeController) CompleteChallenge(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	challengeID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge id"})
		return
	}

	alreadyDone, err := chc.Challenges.Complete(challengeID, user.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if alreadyDone {
		c.JSON(http.StatusOK, gin.H{"completed": true, "message": "Challenge already completed today"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": true, "message": "Challenge completed"})
}

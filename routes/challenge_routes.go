package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupChallengeRoutes(protected *gin.RouterGroup, challengeController *controllers.ChallengeController) {
	challenges := protected.Group("/challenges")
	{
		challenges.GET("/today", challengeController.GetTodayChallenge)
		challenges.POST("/:id/complete", challengeController.CompleteChallenge)
	}
}

package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	comments := protected.Group("/comments")
	{
		comments.GET("/lesson/:lessonId", commentController.GetLessonComments)
		comments.POST("", commentController.CreateComment)
		comments.PATCH("/:id/best-answer", commentController.MarkBestAnswer)
		comments.DELETE("/:id", commentController.DeleteComment)
	}
}

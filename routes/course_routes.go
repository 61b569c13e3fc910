package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCourseRoutes(protected *gin.RouterGroup, courseController *controllers.CourseController, lessonController *controllers.LessonController) {
	courses := protected.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:id", courseController.GetCourseDetail)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
		courses.POST("/:id/enroll", courseController.EnrollCourse)
		courses.POST("/:id/announcements", courseController.AnnounceCourse)
		courses.POST("/:id/lessons", lessonController.CreateLesson)
	}

	lessons := protected.Group("/lessons")
	{
		lessons.GET("/:id", lessonController.GetLesson)
		lessons.PUT("/:id", lessonController.UpdateLesson)
		lessons.DELETE("/:id", lessonController.DeleteLesson)
		lessons.POST("/:id/complete", lessonController.CompleteLesson)
	}
}

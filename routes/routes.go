package routes

import (
	"github.com/codely-ge/api-go/controllers"
	"github.com/codely-ge/api-go/middleware"
	"github.com/codely-ge/api-go/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Services
	notificationService := services.NewNotificationService(db)
	commentService := services.NewCommentService(db, notificationService)
	xpService := services.NewXPService(db)
	challengeService := services.NewChallengeService(db, xpService, notificationService)

	// Controllers
	authController := controllers.NewAuthController(db)
	commentController := controllers.NewCommentController(db, commentService, xpService)
	notificationController := controllers.NewNotificationController(notificationService)
	courseController := controllers.NewCourseController(db, notificationService)
	lessonController := controllers.NewLessonController(db, xpService, notificationService)
	leaderboardController := controllers.NewLeaderboardController(db)
	challengeController := controllers.NewChallengeController(challengeService)
	activityController := controllers.NewActivityController(db, xpService)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/login/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupCourseRoutes(protected, courseController, lessonController)
		SetupCommentRoutes(protected, commentController)
		SetupNotificationRoutes(protected, notificationController)
		SetupChallengeRoutes(protected, challengeController)
		SetupUploadRoutes(protected, uploadController)

		protected.GET("/leaderboard", leaderboardController.GetLeaderboard)
		protected.GET("/users/:id/activity", activityController.GetUserActivity)
	}
}

package app

import (
	"masomo_backend/docs"
	"masomo_backend/internal/config"
	"masomo_backend/internal/middleware"
	"masomo_backend/internal/model"
	"masomo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	api := router.Group("/api/v1")

	// Public: registration, login and the course catalog. Catalog endpoints
	// take optional auth so enrolled viewers see full lesson content.
	public := api.Group("")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/leaderboard", c.achievement.Leaderboard)
	}

	// Authenticated: everything a logged-in student can do.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/users/me", c.user.GetProfile)
		authed.PUT("/users/me", c.user.UpdateProfile)
		authed.POST("/users/me/avatar", c.user.UploadAvatar)
		authed.GET("/users/me/preferences", c.user.GetPreferences)
		authed.PUT("/users/me/preferences", c.user.SavePreferences)
		authed.POST("/users/me/checkin", c.user.Checkin)

		authed.GET("/dashboard", c.dashboard.Get)

		authed.POST("/courses/:id/enroll", c.enrollment.Enroll)
		authed.GET("/courses/:id/enrollment", c.enrollment.Get)
		authed.GET("/courses/:id/progress", c.progress.GetCourseProgress)
		authed.GET("/courses/:id/assignments", c.assignment.ListForCourse)
		authed.GET("/courses/:id/tests", c.test.ListForCourse)
		authed.GET("/enrollments", c.enrollment.List)
		authed.GET("/lessons/:id", c.course.GetLesson)
		authed.POST("/progress", c.progress.Record)

		authed.GET("/assignments", c.assignment.List)
		authed.GET("/assignments/:id", c.assignment.Get)
		authed.POST("/assignments/:id/submit", c.assignment.Submit)

		authed.GET("/tests", c.test.List)
		authed.GET("/tests/:id", c.test.Get)
		authed.POST("/tests/:id/submit", c.test.Submit)

		authed.GET("/achievements", c.achievement.Mine)

		authed.GET("/friends", c.friendship.List)
		authed.DELETE("/friends/:id", c.friendship.Unfriend)
		authed.GET("/friends/activity", c.friendship.Activity)
		authed.POST("/friends/requests", c.friendship.SendRequest)
		authed.GET("/friends/requests", c.friendship.PendingRequests)
		authed.PUT("/friends/requests/:id/accept", c.friendship.Accept)
		authed.PUT("/friends/requests/:id/reject", c.friendship.Reject)

		authed.GET("/events", c.event.List)
		authed.POST("/events", c.event.Create)
		authed.GET("/events/upcoming", c.event.Upcoming)
		authed.PUT("/events/:id", c.event.Update)
		authed.DELETE("/events/:id", c.event.Delete)
		authed.POST("/events/:id/join", c.event.Join)
		authed.DELETE("/events/:id/leave", c.event.Leave)

		authed.GET("/notifications", c.notification.List)
		authed.GET("/notifications/unread", c.notification.UnreadCount)
		authed.PUT("/notifications/:id/read", c.notification.MarkRead)
		authed.POST("/notifications/read-all", c.notification.MarkAllRead)
	}

	// Instructor: course authoring. Admins pass the role check too.
	instructor := api.Group("/instructor")
	instructor.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.ListMine)
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:id", c.course.Update)
		instructor.PUT("/courses/:id/publish", c.course.SetPublished)
		instructor.POST("/courses/:id/lessons", c.course.AddLesson)
		instructor.PUT("/lessons/:id", c.course.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.course.DeleteLesson)
		instructor.POST("/lessons/:id/video", c.course.UploadLessonVideo)

		instructor.POST("/assignments", c.assignment.Create)
		instructor.POST("/assignments/:id/questions", c.assignment.AddQuestion)
		instructor.PUT("/assignments/:id/publish", c.assignment.Publish)
		instructor.GET("/assignments/:id/submissions", c.assignment.ListSubmissions)

		instructor.POST("/tests", c.test.Create)
		instructor.POST("/tests/:id/questions", c.test.AddQuestion)
		instructor.PUT("/tests/:id/publish", c.test.Publish)
	}

	// Admin: platform management.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/stats", c.admin.Stats)
		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:id/disable", c.admin.SetDisabled)
		admin.PUT("/users/:id/role", c.admin.SetRole)
		admin.POST("/courses/:id/reset", c.admin.ResetCourse)
		admin.GET("/achievements", c.admin.ListAchievementDefinitions)
		admin.POST("/achievements", c.admin.CreateAchievementDefinition)
		admin.PUT("/achievements/:id", c.admin.UpdateAchievementDefinition)
		admin.PUT("/achievements/:id/active", c.admin.SetAchievementActive)
	}
}

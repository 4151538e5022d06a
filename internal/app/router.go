package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/google", c.auth.GoogleLogin)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/profile", c.auth.GetProfile)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)

		// 选课与学习进度
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)
		authGroup.POST("/courses/:id/lessons/complete", c.course.CompleteLesson)
		authGroup.POST("/courses/:id/complete", c.course.CompleteCourse)
		authGroup.GET("/enrollments", c.course.ListEnrollments)

		// 仪表盘
		dashboard := authGroup.Group("/dashboard")
		{
			dashboard.GET("", c.dashboard.GetOverview)
			dashboard.GET("/stats", c.dashboard.GetStats)
			dashboard.POST("/activity", c.dashboard.LogActivity)
			dashboard.GET("/weekly-activity", c.dashboard.GetWeeklyActivity)
			dashboard.GET("/monthly-progress", c.dashboard.GetMonthlyProgress)
			dashboard.GET("/monthly-activity", c.dashboard.GetMonthlyActivity)
			dashboard.GET("/progress", c.dashboard.GetSkillProgress)
			dashboard.GET("/categories", c.dashboard.GetCategoryDistribution)
			dashboard.GET("/streak", c.dashboard.GetStreak)
		}

		// 课程测验会话
		quiz := authGroup.Group("/quiz")
		{
			quiz.POST("/:courseId/start", c.quiz.StartSession)
			quiz.GET("/sessions/:id", c.quiz.GetSession)
			quiz.POST("/sessions/:id/answer", c.quiz.SelectAnswer)
			quiz.POST("/sessions/:id/navigate", c.quiz.Navigate)
			quiz.POST("/sessions/:id/submit", c.quiz.Submit)
			quiz.DELETE("/sessions/:id", c.quiz.CloseSession)
		}

		// 正式测评
		authGroup.GET("/courses/:id/assessments", c.assessment.ListByCourse)
		assessments := authGroup.Group("/assessments")
		{
			assessments.GET("/results", c.assessment.ListResults)
			assessments.GET("/:id", c.assessment.Get)
			assessments.POST("/:id/submit", c.assessment.Submit)
		}
	}
}

package app

import (
	"finlearn_backend/docs"
	"finlearn_backend/internal/config"
	"finlearn_backend/internal/middleware"
	"finlearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 课程目录公开可读
		api.GET("/courses", c.course.ListCourses)
		api.GET("/courses/:id", c.course.GetCourse)
	}

	// 读取接口：匿名可访问，带 token 时按用户进度过滤
	reads := api.Group("")
	reads.Use(middleware.TryAuthMiddleware(cfg))
	{
		reads.GET("/units", c.progress.GetUnits)
		reads.GET("/course-progress", c.progress.GetCourseProgress)
		reads.GET("/lessons", c.progress.GetLesson)
		reads.GET("/lessons/:id", c.progress.GetLesson)
		reads.GET("/lesson-percentage", c.progress.GetLessonPercentage)
		reads.GET("/user-progress", c.userProgress.Get)
		reads.GET("/user-subscription", c.subscription.Get)
		reads.GET("/leaderboard", c.leaderboard.Get)
	}

	// 写入接口必须登录
	writes := api.Group("")
	writes.Use(middleware.AuthMiddleware(cfg))
	{
		writes.POST("/courses/:id/activate", c.course.ActivateCourse)
		writes.POST("/challenges/:id/progress", c.progress.CompleteChallenge)
		writes.POST("/hearts/reduce", c.userProgress.ReduceHearts)
		writes.POST("/hearts/refill", c.userProgress.RefillHearts)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware(a.adminPolicy))
	{
		admin.POST("/courses", c.admin.CreateCourse)
		admin.PUT("/courses/:id", c.admin.UpdateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)
		admin.POST("/uploads", c.admin.UploadMedia)
	}
}

package app

import (
	"millionaire_backend/docs"
	"millionaire_backend/internal/config"
	"millionaire_backend/internal/middleware"
	"millionaire_backend/internal/model"
	"millionaire_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		games := authGroup.Group("/games")
		{
			games.POST("", c.game.CreateGame)
			games.GET("/:id", c.game.GetGame)
			games.POST("/:id/answer", c.game.Answer)
			games.POST("/:id/take_money", c.game.TakeMoney)
			games.POST("/:id/help", c.game.Help)
		}

		authGroup.GET("/users/me", c.user.Me)

		// 题库管理（仅管理员）
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/questions", c.question.CreateQuestion)
			admin.GET("/questions", c.question.ListQuestions)
			admin.POST("/questions/import", c.question.ImportQuestions)
			admin.GET("/questions/coverage", c.question.Coverage)
		}
	}
}

package app

import (
	"biodiv_backend/docs"
	"biodiv_backend/internal/config"
	"biodiv_backend/internal/middleware"
	"biodiv_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		authGroup.GET("/questions", c.question.GetQuestions)

		authGroup.GET("/species", c.species.GetSpecies)
		authGroup.POST("/species", c.species.CreateSpecies)

		authGroup.POST("/species-logs", c.observation.SubmitLog)
		authGroup.GET("/species-logs", c.observation.GetOwnLogs)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	api := router.Group("/api")
	{
		api.GET("/health", c.health.Health)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		public := api.Group("/public")
		{
			public.GET("/species-locations", c.siteMap.SpeciesLocations)
			public.GET("/species-images", c.siteMap.SpeciesImages)
			public.GET("/questionnaire-overview", c.question.Overview)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	adminGroup := router.Group("/api")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		adminGroup.POST("/questions", c.question.CreateQuestion)
		adminGroup.PUT("/questions/:id", c.question.UpdateQuestion)
		adminGroup.DELETE("/questions/:id", c.question.DeleteQuestion)

		adminGroup.PUT("/species-logs/:id", c.admin.UpdateLog)
		adminGroup.DELETE("/species-logs/:id", c.admin.DeleteLog)

		admin := adminGroup.Group("/admin")
		{
			admin.GET("/all-logs", c.admin.GetAllLogs)
			admin.GET("/export-csv", c.admin.ExportCSV)
			admin.GET("/users", c.admin.GetUsers)
			admin.PUT("/users/:id", c.admin.UpdateUser)
			admin.DELETE("/users/:id", c.admin.DeleteUser)
		}
	}
}

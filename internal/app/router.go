package app

import (
	"leadform_backend/docs"
	"leadform_backend/internal/config"
	"leadform_backend/internal/middleware"
	"leadform_backend/pkg/monitoring"

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
		a.registerBuilderRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Visitor-facing renderer surface. Nothing here requires a login.
	publicAPI := router.Group("/api/public")
	{
		publicAPI.GET("/forms/:id/view", c.render.GetFormView)
		publicAPI.POST("/forms/:id/submit", c.lead.Submit)
		publicAPI.POST("/forms/:id/chat/start", c.chat.StartForForm)

		publicAPI.GET("/preview/:token/view", c.render.GetPreviewView)
		publicAPI.POST("/preview/:token/chat/start", c.chat.StartForPreview)

		publicAPI.GET("/chat/:sessionId", c.chat.GetTurn)
		publicAPI.POST("/chat/:sessionId/answer", c.chat.SubmitAnswer)
	}
}

func (a *App) registerBuilderRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Form lifecycle
	rg.POST("/forms", c.form.CreateForm)
	rg.GET("/forms", c.form.ListForms)
	rg.GET("/forms/:id", c.form.GetForm)
	rg.PUT("/forms/:id", c.form.UpdateForm)
	rg.DELETE("/forms/:id", c.form.DeleteForm)
	rg.POST("/forms/:id/publish", c.form.Publish)
	rg.POST("/forms/:id/unpublish", c.form.Unpublish)

	// Question editing
	rg.POST("/forms/:id/questions", c.form.AddQuestion)
	rg.PUT("/forms/:id/questions/:questionId", c.form.UpdateQuestion)
	rg.DELETE("/forms/:id/questions/:questionId", c.form.DeleteQuestion)
	rg.POST("/forms/:id/questions/:questionId/duplicate", c.form.DuplicateQuestion)
	rg.POST("/forms/:id/questions/:questionId/move", c.form.MoveQuestion)
	rg.POST("/forms/:id/questions/:questionId/options", c.form.AddOption)
	rg.PUT("/forms/:id/questions/:questionId/options/:index", c.form.UpdateOption)
	rg.DELETE("/forms/:id/questions/:questionId/options/:index", c.form.RemoveOption)

	// Hand-offs
	rg.POST("/forms/:id/preview", c.form.CreatePreview)
	rg.POST("/forms/:id/branding/logo", c.form.UploadLogo)

	// Captured leads
	rg.GET("/forms/:id/leads", c.lead.ListLeads)
	rg.GET("/leads/:id", c.lead.GetLead)
	rg.DELETE("/leads/:id", c.lead.DeleteLead)
}

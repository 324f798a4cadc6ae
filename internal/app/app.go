package app

import (
	"context"
	"leadform_backend/internal/config"
	"leadform_backend/internal/controller"
	"leadform_backend/internal/repository"
	"leadform_backend/internal/service"
	"leadform_backend/pkg/database"
	"leadform_backend/pkg/logger"
	"leadform_backend/pkg/monitoring"
	"leadform_backend/pkg/security"
	"leadform_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	form    *repository.FormRepository
	lead    *repository.LeadRepository
	session *repository.SessionRepository
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	form    *service.FormService
	render  *service.RenderService
	chat    *service.ChatService
	preview *service.PreviewService
	lead    *service.LeadService
}

type controllers struct {
	auth   *controller.AuthController
	form   *controller.FormController
	render *controller.RenderController
	chat   *controller.ChatController
	lead   *controller.LeadController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	sessionTTL := time.Duration(cfg.Preview.SessionTTLMinutes) * time.Minute
	previewTTL := time.Duration(cfg.Preview.TTLMinutes) * time.Minute

	return &repositories{
		user:    repository.NewUserRepository(db),
		form:    repository.NewFormRepository(db),
		lead:    repository.NewLeadRepository(db),
		session: repository.NewSessionRepository(rdb, sessionTTL, previewTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.form = service.NewFormService(repos.form)
	s.render = service.NewRenderService(repos.form)
	s.preview = service.NewPreviewService(repos.session, repos.form)
	s.lead = service.NewLeadService(repos.lead, repos.form)

	// The wizard hands finished transcripts to the lead pipeline.
	s.chat = service.NewChatService(repos.session, repos.form, s.lead)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		form:   controller.NewFormController(s.form, s.preview, s.storage),
		render: controller.NewRenderController(s.render, s.preview),
		chat:   controller.NewChatController(s.chat, s.preview),
		lead:   controller.NewLeadController(s.lead),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("logger initialized")

	gin.SetMode(cfg.Server.Mode)

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("leadform-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

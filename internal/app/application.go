package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lessonwiki-backend/internal/config"
	"lessonwiki-backend/internal/handlers"
	"lessonwiki-backend/internal/middleware"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/render"
	"lessonwiki-backend/internal/repository"
	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/cache"
	"lessonwiki-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Lesson repository.LessonRepository
	Wiki   repository.WikiRepository
}

type serviceContainer struct {
	Lesson *service.LessonService
	Search *service.SearchService
	Upload *service.UploadService
	Wiki   *service.WikiService
}

type handlerContainer struct {
	Lesson *handlers.LessonHandler
	Editor *handlers.EditorHandler
	Render *handlers.RenderHandler
	Search *handlers.SearchHandler
	Upload *handlers.UploadHandler
	Wiki   *handlers.WikiHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if cfg.UsesDatabase() {
		if err := app.initDatabase(); err != nil {
			return nil, err
		}
		if err := app.runMigrations(); err != nil {
			return nil, err
		}
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}
	if err := app.initRepositories(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"storage":     a.cfg.StorageBackend,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Wiki{},
		&models.Kit{},
		&models.Lesson{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_lessons_wiki_order ON lessons(wiki_slug, "order" ASC)`,
		"CREATE INDEX IF NOT EXISTS idx_lessons_body ON lessons USING GIN (body)",
	}
	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache && a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	a.cache = c
	return nil
}

func (a *Application) initRepositories() error {
	if a.cfg.UsesDatabase() {
		a.repositories = repositoryContainer{
			Lesson: repository.NewLessonRepository(a.db),
			Wiki:   repository.NewWikiRepository(a.db),
		}
		return nil
	}

	lessonRepo, err := repository.NewFileLessonRepository(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	a.repositories = repositoryContainer{Lesson: lessonRepo}
	return nil
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Lesson: service.NewLessonService(a.repositories.Lesson, a.cache),
		Search: service.NewSearchService(a.repositories.Lesson),
		Upload: service.NewUploadService(a.cfg.UploadDir, int(a.cfg.MaxUploadSize>>20)),
	}
	if a.repositories.Wiki != nil {
		a.services.Wiki = service.NewWikiService(a.repositories.Wiki)
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Lesson: handlers.NewLessonHandler(a.services.Lesson),
		Editor: handlers.NewEditorHandler(a.services.Lesson),
		Render: handlers.NewRenderHandler(a.services.Lesson, render.DefaultRegistry()),
		Search: handlers.NewSearchHandler(a.services.Search),
		Upload: handlers.NewUploadHandler(a.services.Upload),
		Wiki:   handlers.NewWikiHandler(a.services.Wiki),
	}
}

func (a *Application) initRouter() {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.NewRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow).Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"site":    a.cfg.SiteName,
			"storage": a.cfg.StorageBackend,
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/uploads", a.cfg.UploadDir)

	api := router.Group("/api")
	{
		api.GET("/wikis", a.handlers.Wiki.List)
		api.GET("/wikis/resolve", a.handlers.Wiki.Resolve)
		api.GET("/wikis/:wiki", a.handlers.Wiki.Get)

		api.GET("/wikis/:wiki/lessons", a.handlers.Lesson.List)
		api.GET("/wikis/:wiki/lessons/:slug", a.handlers.Lesson.Get)
		api.GET("/wikis/:wiki/lessons/:slug/page", a.handlers.Render.GetPage)
		api.GET("/wikis/:wiki/search", a.handlers.Search.Search)
	}

	editor := api.Group("/editor")
	editor.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
	{
		editor.POST("/lessons", a.handlers.Lesson.Save)
		editor.POST("/lessons/publish", a.handlers.Editor.Publish)
		editor.GET("/lessons/:id/document", a.handlers.Editor.GetDocument)
		editor.DELETE("/lessons/:id", a.handlers.Lesson.Delete)
		editor.POST("/lessons/reorder", a.handlers.Lesson.Reorder)

		editor.POST("/wikis", a.handlers.Wiki.Create)
		editor.DELETE("/wikis/:wiki", a.handlers.Wiki.Delete)

		editor.POST("/uploads/image", a.handlers.Upload.UploadImage)
		editor.POST("/uploads/video", a.handlers.Upload.UploadVideo)
		editor.GET("/uploads", a.handlers.Upload.List)
		editor.DELETE("/uploads", a.handlers.Upload.Delete)
	}

	a.router = router
}

package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/core/services"
	"github.com/docuglot/backend/internal/core/translate"
	"github.com/docuglot/backend/internal/infrastructure/db"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/handlers"
	httpmw "github.com/docuglot/backend/internal/transport/http/middleware"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

// App bundles the long-running components the router wires so main can
// start and stop them around the HTTP server's lifecycle.
type App struct {
	Scheduler  *services.Scheduler
	Cleanup    *services.CleanupService
	Translator translate.Translator
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) *App {
	// Repositories
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	batchRepo := db.NewBatchRepository(cfg.DB, cfg.Logger)

	// Core services
	store := services.NewTaskStore(taskRepo, cfg.Logger)
	translator := translate.NewClient(cfg.Config.OpenAI, cfg.Logger)
	executor := translate.NewExecutor(
		translator,
		cfg.Config.Tasks.TranslationConcurrency,
		cfg.Config.Tasks.TranslationWindowDelay,
		cfg.Logger,
	)
	pipeline := services.NewPipeline(executor, cfg.Config.Files, cfg.Config.Tasks.MaxChunkSize, cfg.Logger)
	scheduler := services.NewScheduler(store, pipeline, cfg.Config.Tasks.MaxConcurrent, cfg.Config.Tasks.MaxRetry, cfg.Logger)
	translationService := services.NewTranslationService(store, scheduler, cfg.Config.Files, cfg.Logger)
	batchService := services.NewBatchService(batchRepo, translationService, store, cfg.Config.Files, cfg.Logger)
	cleanupService := services.NewCleanupService(store, batchRepo, cfg.Config.Files, cfg.Config.Tasks, cfg.Logger)
	systemService := services.NewSystemService(translationService, cfg.Config, cfg.Logger)

	// Handlers
	translationHandler := handlers.NewTranslationHandler(translationService, cfg.Logger)
	batchHandler := handlers.NewBatchHandler(batchService, cfg.Logger)
	systemHandler := handlers.NewSystemHandler(systemService, cleanupService, cfg.Logger)
	promptHandler := handlers.NewPromptHandler(cfg.Logger)
	progressHandler := handlers.NewProgressHandler(translationService, cfg.Logger)

	app.Use(httpmw.Owner())

	// Websocket progress stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/translations/:id/progress", websocket.New(progressHandler.Handle))

	// API v1 routes
	api := app.Group("/api/v1")

	translations := api.Group("/translations")
	translations.Post("/", translationHandler.Create)
	translations.Get("/", translationHandler.List)
	// Batch routes precede the :id wildcards so "batch" is not taken for an id.
	translations.Post("/batch", batchHandler.Create)
	translations.Post("/batch/progress", batchHandler.Progress)
	translations.Post("/batch/download", batchHandler.Download)
	translations.Get("/:id", translationHandler.Get)
	translations.Post("/:id/retry", translationHandler.Retry)
	translations.Get("/:id/download", translationHandler.Download)
	translations.Delete("/:id", translationHandler.Delete)

	system := api.Group("/system")
	system.Get("/status", systemHandler.Status)
	system.Post("/cleanup", systemHandler.Cleanup)

	prompts := api.Group("/prompts")
	prompts.Get("/", promptHandler.List)
	prompts.Post("/test", promptHandler.Test)

	return &App{
		Scheduler:  scheduler,
		Cleanup:    cleanupService,
		Translator: translator,
	}
}

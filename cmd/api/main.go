package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meeting-notes-team/meeting-notes/pkg/validator"

	"github.com/meeting-notes-team/meeting-notes/internal/adapter/handler"
	"github.com/meeting-notes-team/meeting-notes/internal/adapter/repository"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/cache"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/database"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/storage"
	notesuc "github.com/meeting-notes-team/meeting-notes/internal/usecase/notes"
	pkgai "github.com/meeting-notes-team/meeting-notes/pkg/ai"
	"github.com/meeting-notes-team/meeting-notes/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply schema migrations only when explicitly enabled.
	// Production deployments manage the schema with sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Manage schema with sql-migrate instead.")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema changes in CI/CD/production")
	}

	// Initialize status cache, preferring Redis with an in-memory fallback
	log.Println("📦 Connecting to Redis...")
	var statusStore cache.StatusStore
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory status cache", err)
		statusStore = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		statusStore = redisStore
	}

	// Initialize object storage
	log.Println("🗄️  Connecting to object storage...")
	objectStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	jobRepo := repository.NewJobRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	notesRepo := repository.NewNotesRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize the notes pipeline
	log.Println("🤖 Initializing notes pipeline...")
	completionClient := pkgai.NewCompletionClient(&cfg.AI)
	notesService := notesuc.NewService(
		jobRepo,
		transcriptRepo,
		notesRepo,
		completionClient,
		statusStore,
		objectStore,
		cfg,
		logger,
	)

	// Start background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if err := notesService.StartWorkerPool(workerCtx, cfg.Worker.Count); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	// Initialize handlers
	log.Println("🛣️  Setting up routes...")
	notesHandler := handler.NewNotesHandler(notesService, objectStore, logger)
	webhookHandler := handler.NewWebhookHandler(notesService, logger)

	router := handler.NewRouter(cfg, notesHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if err := notesService.StopWorkerPool(); err != nil {
		log.Printf("⚠️  Worker pool shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

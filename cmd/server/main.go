package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fabrica/production-service/config"
	"github.com/fabrica/production-service/internal/catalog"
	catH "github.com/fabrica/production-service/internal/catalog/handler"
	catRepoPkg "github.com/fabrica/production-service/internal/catalog/repository"
	catUCPkg "github.com/fabrica/production-service/internal/catalog/usecase"
	"github.com/fabrica/production-service/internal/middleware"
	prodH "github.com/fabrica/production-service/internal/production/handler"
	prodUCPkg "github.com/fabrica/production-service/internal/production/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. Open the Catalog Store
	var store catalog.Repository
	switch cfg.Store.Driver {
	case "memory":
		store = catRepoPkg.NewMemoryRepository()
		appLogger.Info("Using in-memory catalog store")
	default:
		db, err := catRepoPkg.Open(&cfg.Postgres)
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()

		pgRepo := catRepoPkg.NewPGRepository(db)
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			appLogger.Fatal("Could not apply schema", zap.Error(err))
		}
		store = pgRepo
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	}

	// 4. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(store, appLogger)
	prodUC := prodUCPkg.NewProductionUseCase(store, appLogger)

	// 5. Initialize Handlers
	catHandler := catH.NewCatalogHandler(catUC, appLogger)
	prodHandler := prodH.NewProductionHandler(prodUC, appLogger)

	// 6. Start HTTP Server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	// The front-end is served from another origin (Vite dev server).
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(appLogger))

	catHandler.Register(e)
	prodHandler.Register(e)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Server.AppEnv == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = cfg.Logger.Encoding
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace
	return zapCfg.Build()
}

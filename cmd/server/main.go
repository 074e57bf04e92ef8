package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job_portal/internal/config"
	"job_portal/internal/handler"
	"job_portal/internal/logging"
	"job_portal/internal/repository"
	"job_portal/internal/service"
	"job_portal/internal/utils"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file loaded, relying on environment variables")
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	var store repository.Store
	if cfg.DatabaseURL == config.MemoryDatabaseURL {
		logger.Warn("using in-memory store, data is lost on restart")
		store = repository.NewMemoryStore()
	} else {
		pool, err := config.ConnectDB(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := config.Migrate(ctx, pool, logger); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		store = repository.NewPostgresStore(pool)
	}

	// --- Services ---
	jwtUtil := utils.NewJWTUtil(cfg.SecretKey, cfg.SessionDuration)
	authService := service.NewAuthService(store, jwtUtil)
	jobService := service.NewJobService(store)
	adminService := service.NewAdminService(store, nil)
	seedService := service.NewSeedService(store)

	created, err := seedService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("created default admin user", "email", cfg.AdminEmail)
	}

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Auth:      authService,
		Jobs:      jobService,
		Admin:     adminService,
		Seed:      seedService,
		JWTUtil:   jwtUtil,
		Renderer:  view.NewJSONRenderer(),
		Logger:    logger,
		DB:        store,
		Secure:    cfg.CookieSecure,
		CORSAllow: cfg.CORSOrigins,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}

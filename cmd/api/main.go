package main

import (
	"context"
	"errors"
	"go-portfolio/config"
	"go-portfolio/internal/delivery/http/handler"
	"go-portfolio/internal/delivery/http/middleware"
	"go-portfolio/internal/domain"
	"go-portfolio/internal/repository/postgres"
	"go-portfolio/internal/usecase"
	"go-portfolio/pkg/database"
	"go-portfolio/pkg/email"
	"go-portfolio/pkg/logger"
	"go-portfolio/pkg/metrics"
	"go-portfolio/pkg/redis"
	"go-portfolio/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Log.Info("Starting portfolio site", "port", cfg.Port, "env", cfg.AppEnv)

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Error("Configuration errors", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Log.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	healthChecks := map[string]usecase.HealthCheck{}

	// 3. Optional Redis for the shared rate limiter
	var rateLimitStore middleware.RateLimitStore
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case err == nil:
		defer redisClient.Close()
		rateLimitStore = middleware.NewRedisRateLimitStore(redisClient)
		healthChecks["redis"] = redis.HealthCheck(redisClient)
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("REDIS_URL not configured. Rate limiting will use in-memory store.")
	default:
		logger.Log.Warn("Redis unavailable. Rate limiting will use in-memory store.", "error", err)
	}

	fallbackLimiter := middleware.NewMemoryRateLimitStore()
	fallbackLimiter.StartCleanup(ctx, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)

	// 4. Optional Postgres archive of contact messages
	var archive domain.ContactRepository
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		archive = postgres.NewContactRepository(dbPool)
		healthChecks["database"] = dbPool.Ping
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	contactUC := usecase.NewContactUsecase(emailService, archive, validate, cfg.ContactEmailTo)
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 7. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 8. Setup Router
	router := handler.NewRouter(handler.RouterDeps{
		ContactUC:       contactUC,
		HealthUC:        healthUC,
		RateLimitStore:  rateLimitStore,
		FallbackLimiter: fallbackLimiter,
		Metrics:         m,
		Registry:        registry,
		Config:          cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

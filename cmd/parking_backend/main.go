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

	"github.com/SscSPs/car_parking_app/internal/core/services"
	"github.com/SscSPs/car_parking_app/internal/handlers"
	"github.com/SscSPs/car_parking_app/internal/jobs"
	"github.com/SscSPs/car_parking_app/internal/metrics"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/SscSPs/car_parking_app/internal/platform/config"
	"github.com/SscSPs/car_parking_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/car_parking_app/migrations"
	"github.com/SscSPs/car_parking_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// @title Car Parking API
// @version 1.0
// @description Parkings, car entries and exits, billing and admin reports.

// @host localhost:5050
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	if cfg.MigrationsEnabled {
		if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	redisClient, err := newRedisClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	loginLimiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, m)

	if cfg.SeedDefaultData {
		if err := serviceContainer.StaticData.InitializeStaticData(ctx); err != nil {
			logger.Error("Failed to seed default data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		LoginLimiter: loginLimiter,
		Metrics:      m,
		DB:           dbPool,
	})

	reconciler := jobs.NewSlotReconciler(serviceContainer.Parking, m, logger)
	scheduler, err := jobs.Schedule(cfg.ReconcileSchedule, reconciler)
	if err != nil {
		logger.Error("Failed to schedule slot reconciliation", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if scheduler != nil {
		scheduler.Start()
		logger.Info("Slot reconciliation scheduled", slog.String("schedule", cfg.ReconcileSchedule))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// newRedisClient connects to redis when url is set. Without it the rate limiter keeps its counters in memory.
func newRedisClient(ctx context.Context, url string, logger *slog.Logger) (*redis.Client, error) {
	if url == "" {
		logger.Info("REDIS_URL not set, using in-memory rate limit store")
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("Connected to redis")
	return client, nil
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/car_parking_app/cmd/docs"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/SscSPs/car_parking_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsExporter records HTTP traffic and serves the collected metrics.
type MetricsExporter interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// RouteDeps carries the infrastructure the routes need besides the services.
// Nil members disable the feature that uses them.
type RouteDeps struct {
	LoginLimiter *limiter.Limiter
	Metrics      MetricsExporter
	DB           Pinger
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.Use(cors.New(corsConfig(cfg)))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/health", healthCheck(cfg, deps.DB))

	setupAPIRoutes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	api := r.Group("/api")
	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	limit := func(c *gin.Context) { c.Next() }
	if deps.LoginLimiter != nil {
		limit = middleware.RateLimit(deps.LoginLimiter)
	}
	registerAuthRoutes(api, services, limit, auth)

	protected := api.Group("", auth)
	registerParkingRoutes(protected, services.Parking)
	registerCarRoutes(protected, services.Car)
	registerReportingRoutes(protected, services.Reporting)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// healthCheck godoc
// @Summary Health check
// @Description Reports service health. With ENABLE_DB_CHECK the database is pinged as well.
// @Tags root
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func healthCheck(cfg *config.Config, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.EnableDBCheck && db != nil {
			if err := db.Ping(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check database ping failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

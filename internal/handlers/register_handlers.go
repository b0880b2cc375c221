package handlers

import (
	"github.com/SscSPs/credit_tracking_app/cmd/docs"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/SscSPs/credit_tracking_app/internal/platform/config"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/SscSPs/credit_tracking_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies are the non-service collaborators of the HTTP layer. Every field is optional.
type Dependencies struct {
	Metrics       *metrics.Metrics
	HealthChecks  map[string]portsrepo.HealthChecker
	UploadLimiter *limiter.Limiter
	Posthog       *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) error {
	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	registerHealthRoutes(r, deps.HealthChecks)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	setupAPIRoutes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	api := r.Group("/api")

	registerTransactionRoutes(api, services.Ledger)
	registerCreditRoutes(api, services.Credit)
	registerReportRoutes(api, services.Reporting)

	// Uploads are the only write path: rate limited and, when enabled, authenticated.
	var uploadMiddleware []gin.HandlerFunc
	if deps.UploadLimiter != nil {
		uploadMiddleware = append(uploadMiddleware, middleware.RateLimit(deps.UploadLimiter))
	}
	if cfg.AuthEnabled {
		uploadMiddleware = append(uploadMiddleware, middleware.AuthMiddleware(cfg.JWTSecret))
	}
	registerUploadRoutes(api.Group("", uploadMiddleware...), services.Ingestion, cfg.UploadMaxBytes, deps.Posthog)
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

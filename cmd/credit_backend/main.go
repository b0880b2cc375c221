package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/adapters/cache"
	"github.com/SscSPs/credit_tracking_app/internal/adapters/spreadsheet"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_tracking_app/internal/core/services"
	"github.com/SscSPs/credit_tracking_app/internal/handlers"
	"github.com/SscSPs/credit_tracking_app/internal/jobs"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/SscSPs/credit_tracking_app/internal/platform/config"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/SscSPs/credit_tracking_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/credit_tracking_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/credit_tracking_app/internal/repositories/memory"
	"github.com/SscSPs/credit_tracking_app/internal/utils"
	"github.com/SscSPs/credit_tracking_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Credit Tracking API
// @version 1.0
// @description Ledger, credit and reporting API for daily shop workbooks.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Amounts are JSON numbers for the dashboard
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	m := metrics.New()
	healthChecks := make(map[string]portsrepo.HealthChecker)

	// --- Report cache ---
	var reportCache portsrepo.ReportCache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		redisCache := cache.NewRedisReportCache(redisClient, cfg.ReportCachePrefix, cfg.ReportCacheTTL)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis not reachable at startup, reports will be computed uncached until it is", slog.String("error", err.Error()))
		}
		healthChecks["cache"] = redisCache
		reportCache = redisCache
		logger.Info("Using Redis report cache")
	} else {
		reportCache = cache.NewMemoryReportCache(cfg.ReportCacheSize, cfg.ReportCacheTTL)
		logger.Info("Using in-process report cache", slog.Int("size", cfg.ReportCacheSize))
	}

	// --- Ledger storage ---
	repos, closeStorage, err := openStorage(ctx, cfg, reportCache, healthChecks, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	svc := services.NewServiceContainer(cfg, repos, spreadsheet.NewParser(), m)

	// --- Analytics ---
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	// --- HTTP ---
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS, analytics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(m),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{handlers.NextTokenHeader, "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.UploadRateLimit)
	if err != nil {
		return fmt.Errorf("invalid UPLOAD_RATE_LIMIT %q: %w", cfg.UploadRateLimit, err)
	}

	if err := handlers.RegisterRoutes(r, cfg, svc, handlers.Dependencies{
		Metrics:       m,
		HealthChecks:  healthChecks,
		UploadLimiter: limiter.New(limitermemory.NewStore(), rate),
		Posthog:       posthogClient,
	}); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	// --- Aging job ---
	if cfg.AgingJobSchedule != "" {
		var jobOpts []jobs.AgingJobOption
		if redisClient != nil {
			jobOpts = append(jobOpts, jobs.WithRedisLock(redisClient, cfg.ReportCachePrefix+":jobs:aging"))
		}
		agingJob := jobs.NewAgingJob(svc.Credit, m, logger, jobOpts...)
		scheduler, err := jobs.NewScheduler(cfg.AgingJobSchedule, agingJob, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()

		// Publish the gauges right away instead of waiting for the first tick.
		go func() {
			if _, err := agingJob.Run(ctx); err != nil {
				logger.Warn("Initial aging run failed", slog.String("error", err.Error()))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		logger.Info("Shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openStorage connects the configured ledger backend, running migrations when enabled.
func openStorage(
	ctx context.Context,
	cfg *config.Config,
	reportCache portsrepo.ReportCache,
	healthChecks map[string]portsrepo.HealthChecker,
	logger *slog.Logger,
) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			if err := database.MigratePostgres(cfg.DatabaseURL, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		healthChecks["ledger"] = pgsql.NewLedgerRepository(dbPool)
		return pgsql.NewRepositoryProvider(dbPool, reportCache), func() { database.ClosePgxPool(dbPool) }, nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		if cfg.RunMigrations {
			if err := database.MigrateSQLite(db, logger); err != nil {
				closeDB()
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		logger.Info("SQLite ledger opened", slog.String("path", cfg.SQLitePath))
		healthChecks["ledger"] = sqlite.NewLedgerRepository(db)
		return sqlite.NewRepositoryProvider(db, reportCache), closeDB, nil

	default:
		return portsrepo.RepositoryProvider{
			LedgerRepo:  memory.NewLedgerRepository(),
			ReportCache: reportCache,
		}, func() {}, nil
	}
}

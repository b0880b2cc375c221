package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers for the ledger.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	ShutdownTimeout time.Duration

	// Ledger storage
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool
	RunMigrations bool

	// Credit aging, in days since the customer's last entry
	AgingWarningDays int
	AgingOverdueDays int
	AgingJobSchedule string // cron spec, empty disables the job

	// Report cache. A Redis URL switches from the in-process cache to Redis.
	RedisURL          string
	ReportCacheTTL    time.Duration
	ReportCacheSize   int
	ReportCachePrefix string

	// Upload endpoint
	UploadMaxBytes  int64
	UploadRateLimit string // ulule/limiter format, e.g. "30-M"

	CORSAllowedOrigins []string
	AuthEnabled        bool
	JWTSecret          string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("STORAGE_DRIVER", StorageSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "credit_tracking.db")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("AGING_WARNING_DAYS", 30)
	viper.SetDefault("AGING_OVERDUE_DAYS", 90)
	viper.SetDefault("AGING_JOB_SCHEDULE", "@every 15m")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REPORT_CACHE_TTL", "5m")
	viper.SetDefault("REPORT_CACHE_SIZE", 512)
	viper.SetDefault("REPORT_CACHE_PREFIX", "credit:reports")
	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	viper.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("POSTHOG_API_KEY", "")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		StorageDriver:     strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		SQLitePath:        viper.GetString("SQLITE_PATH"),
		EnableDBCheck:     viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:     viper.GetBool("RUN_MIGRATIONS"),
		AgingWarningDays:  viper.GetInt("AGING_WARNING_DAYS"),
		AgingOverdueDays:  viper.GetInt("AGING_OVERDUE_DAYS"),
		AgingJobSchedule:  strings.TrimSpace(viper.GetString("AGING_JOB_SCHEDULE")),
		RedisURL:          viper.GetString("REDIS_URL"),
		ReportCacheSize:   viper.GetInt("REPORT_CACHE_SIZE"),
		ReportCachePrefix: viper.GetString("REPORT_CACHE_PREFIX"),
		UploadMaxBytes:    viper.GetInt64("UPLOAD_MAX_BYTES"),
		UploadRateLimit:   viper.GetString("UPLOAD_RATE_LIMIT"),
		AuthEnabled:       viper.GetBool("AUTH_ENABLED"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		PosthogAPIKey:     viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = parseDuration("REPORT_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %q", StoragePostgres)
		}
	case StorageSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER is %q", StorageSQLite)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. The ledger is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q, expected postgres, sqlite or memory", cfg.StorageDriver)
	}

	if cfg.AgingWarningDays < 0 || cfg.AgingOverdueDays < cfg.AgingWarningDays {
		return nil, fmt.Errorf("invalid aging thresholds: warning=%d overdue=%d (need 0 <= warning <= overdue)",
			cfg.AgingWarningDays, cfg.AgingOverdueDays)
	}
	if cfg.ReportCacheSize <= 0 {
		return nil, fmt.Errorf("REPORT_CACHE_SIZE must be positive, got %d", cfg.ReportCacheSize)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", cfg.UploadMaxBytes)
	}

	if cfg.AuthEnabled && cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set when AUTH_ENABLED is true in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		log.Printf("Warning: %s not set. Defaulting to %s.\n", key, fallback)
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for k, v := range env {
		t.Setenv(k, v)
	}
	return LoadConfig()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, 30, cfg.AgingWarningDays)
	assert.Equal(t, 90, cfg.AgingOverdueDays)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AuthEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"STORAGE_DRIVER":       "Postgres",
		"PGSQL_URL":            "postgres://localhost/credit",
		"AGING_WARNING_DAYS":   "7",
		"AGING_OVERDUE_DAYS":   "14",
		"REPORT_CACHE_TTL":     "30s",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
	})

	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 7, cfg.AgingWarningDays)
	assert.Equal(t, 14, cfg.AgingOverdueDays)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"overdue before warning", map[string]string{"AGING_WARNING_DAYS": "60", "AGING_OVERDUE_DAYS": "30"}},
		{"bad ttl", map[string]string{"REPORT_CACHE_TTL": "soon"}},
		{"default secret in production", map[string]string{"AUTH_ENABLED": "true", "IS_PRODUCTION": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env)
			assert.Error(t, err)
		})
	}
}

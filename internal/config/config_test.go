package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "SERVER_PORT", "LOG_LEVEL", "REDIS_ADDR",
		"CATALOG_CACHE_TTL", "BUSINESS_TIMEZONE", "BUSINESS_OPEN_HOUR",
		"BUSINESS_CLOSE_HOUR", "SLOT_INTERVAL_MINUTES", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.BusinessTimezone)
	assert.Equal(t, 8, cfg.BusinessOpenHour)
	assert.Equal(t, 20, cfg.BusinessCloseHour)
	assert.Equal(t, 30, cfg.SlotIntervalMinutes)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("BUSINESS_OPEN_HOUR", "9")
	t.Setenv("BUSINESS_CLOSE_HOUR", "18")
	t.Setenv("SLOT_INTERVAL_MINUTES", "15")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 90*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 9, cfg.BusinessOpenHour)
	assert.Equal(t, 18, cfg.BusinessCloseHour)
	assert.Equal(t, 15, cfg.SlotIntervalMinutes)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BUSINESS_OPEN_HOUR", "eight")
	t.Setenv("CATALOG_CACHE_TTL", "-1m")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 8, cfg.BusinessOpenHour)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.True(t, cfg.MetricsEnabled)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("PHONE_REGION", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("CACHE_TTL", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "RU", cfg.PhoneRegion)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 300, cfg.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PHONE_REGION", "gb")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "GB", cfg.PhoneRegion)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 60, cfg.CacheTTL)
	assert.True(t, cfg.SeedDemoData)
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	assert.Equal(t, 10, getEnvAsInt("SHUTDOWN_TIMEOUT", 10))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "quickdesk", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Second, cfg.StatsCache.TTL())
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "60")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, time.Minute, cfg.StatsCache.TTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()

	assert.Error(t, err)
}

func TestStatsCacheTTLDisabled(t *testing.T) {
	assert.Equal(t, time.Duration(0), StatsCacheConfig{TTLSeconds: 0}.TTL())
}

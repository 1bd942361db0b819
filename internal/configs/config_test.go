package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"listing-site/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "file")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultCatalogAPIURL, cfg.Catalog.APIURL)
	assert.Equal(t, "bangHangDataCache", cfg.Catalog.CacheKey)
	assert.Equal(t, 60*time.Minute, cfg.Catalog.CacheWindow)
	assert.Equal(t, 200*time.Millisecond, cfg.Catalog.CacheHitDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Consulting.FeedbackDelay)
	assert.False(t, cfg.RabbitMQ.Enabled)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nCATALOG_CACHE_WINDOW_MINUTES=5\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\nCACHE_BACKEND=redis\nREDIS_URL=redis://localhost:6379/1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv не перезаписывает заданные переменные; t.Setenv вернет окружение после теста
	for _, k := range []string{"PORT", "CATALOG_CACHE_WINDOW_MINUTES", "CORS_ALLOWED_ORIGINS", "CACHE_BACKEND", "REDIS_URL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Rest.Port)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheWindow)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("rabbitmq without url", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "file")
		t.Setenv("RABBITMQ_ENABLED", "true")
		t.Setenv("RABBITMQ_URL", "")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "oops")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))

	t.Setenv("X_BOOL", "yes")
	assert.False(t, getEnvAsBool("X_BOOL", false))
	t.Setenv("X_BOOL", "1")
	assert.True(t, getEnvAsBool("X_BOOL", false))

	t.Setenv("X_DUR", "1m30s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DUR", time.Second))

	t.Setenv("X_LIST", " , ")
	assert.Equal(t, []string{"d"}, getEnvAsList("X_LIST", []string{"d"}))
}

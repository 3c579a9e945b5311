package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOP_BACKEND_BASE_URL", "https://backend.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://backend.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "fr", cfg.I18n.DefaultLanguage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SHOP_BACKEND_BASE_URL", "https://backend.example.com")
	t.Setenv("SHOP_APP_PORT", "9090")
	t.Setenv("SHOP_STORAGE_DRIVER", "sqlite")
	t.Setenv("SHOP_I18N_DEFAULT_LANGUAGE", "ar")
	t.Setenv("SHOP_CATALOG_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "storefront.db", cfg.Storage.Path)
	assert.Equal(t, "ar", cfg.I18n.DefaultLanguage)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
}

func TestLoadValidation(t *testing.T) {
	t.Run("backend base URL is required", func(t *testing.T) {
		t.Setenv("SHOP_BACKEND_BASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend.base_url")
	})

	t.Run("backend base URL must be absolute", func(t *testing.T) {
		t.Setenv("SHOP_BACKEND_BASE_URL", "/api")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute URL")
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("SHOP_BACKEND_BASE_URL", "https://backend.example.com")
		t.Setenv("SHOP_STORAGE_DRIVER", "redis")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.driver")
	})

	t.Run("unsupported default language", func(t *testing.T) {
		t.Setenv("SHOP_BACKEND_BASE_URL", "https://backend.example.com")
		t.Setenv("SHOP_I18N_DEFAULT_LANGUAGE", "en")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_language")
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_NAME", "phone_price")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 8, cfg.Catalog.FetchConcurrency)
	assert.False(t, cfg.Catalog.ActiveOnly)
	assert.Equal(t, 12*time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Worker.RefreshInterval)
	assert.Equal(t, 10*time.Minute, cfg.Worker.ShopCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CATALOG_ACTIVE_ONLY", "true")
	t.Setenv("CATALOG_UNKNOWN_LAST", "1")
	t.Setenv("CATALOG_FETCH_CONCURRENCY", "not-a-number")
	t.Setenv("SHOP_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_HOSTS", " Shop.example.com , ,admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Catalog.ActiveOnly)
	assert.True(t, cfg.Catalog.UnknownLast)
	assert.Equal(t, 8, cfg.Catalog.FetchConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Worker.ShopCacheTTL)
	assert.Equal(t, []string{"shop.example.com", "admin.example.com"}, cfg.CORSHosts)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}, want: "JWT_SECRET"},
		{name: "missing db name", env: map[string]string{"DB_NAME": ""}, want: "DB_NAME"},
		{name: "bad duration", env: map[string]string{"ADMIN_TOKEN_TTL": "soon"}, want: "ADMIN_TOKEN_TTL"},
		{name: "negative duration", env: map[string]string{"SHOP_CACHE_TTL": "-1m"}, want: "SHOP_CACHE_TTL"},
		{name: "zero refresh", env: map[string]string{"CATALOG_REFRESH_INTERVAL": "0s"}, want: "CATALOG_REFRESH_INTERVAL"},
		{name: "half admin", env: map[string]string{"ADMIN_EMAIL": "admin@example.com"}, want: "ADMIN_PASSWORD_HASH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

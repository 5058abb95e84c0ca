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

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "data/silk_market.json", cfg.Storage.Path)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, time.Minute, cfg.Security.RateLimitWindow)
	assert.Equal(t, "file://migrations", cfg.Database.MigrationsURL())
	assert.True(t, cfg.Admin.UsesDefaultPassword())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("FRONTEND_URL", "https://silk.example.com")
	t.Setenv("STORAGE_BACKEND", StorageSQLite)
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.False(t, cfg.Admin.UsesDefaultPassword())
	assert.Equal(t, "https://silk.example.com", cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, 30*time.Second, cfg.Security.RateLimitWindow)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "mongo"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateConfigRequiresBackendSettings(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 5000},
			Storage: StorageConfig{Backend: StorageFile, Path: "data/silk_market.json"},
			Admin:   AdminConfig{Password: "s3cret"},
		}
	}
	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Storage.Path = ""
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Storage.Backend = StorageSQLite
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Storage.Backend = StoragePostgres
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Admin = AdminConfig{}
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Admin = AdminConfig{PasswordHash: "$2a$10$abc"}
	assert.NoError(t, validateConfig(cfg))
}

func TestUsesDefaultPassword(t *testing.T) {
	assert.True(t, (&AdminConfig{Password: DefaultAdminPassword}).UsesDefaultPassword())
	assert.False(t, (&AdminConfig{Password: DefaultAdminPassword, PasswordHash: "$2a$10$abc"}).UsesDefaultPassword())
	assert.False(t, (&AdminConfig{Password: "other"}).UsesDefaultPassword())
}

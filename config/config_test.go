package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("AUTH_SERVICE_URL", "http://auth.local:9001")
	t.Setenv("PROFILE_SERVICE_URL", "http://profile.local:9002")
	t.Setenv("HEALTH_SERVICE_URL", "http://health.local:9003")
	t.Setenv("RECOMMENDATIONS_SERVICE_URL", "http://reco.local:9004")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("DEFAULT_USER_ID", "0")
	t.Setenv("PROFILE_REDIRECT_DELAY", "500ms")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local,http://b.local")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://auth.local:9001", cfg.AuthServiceURL)
	assert.Equal(t, "http://profile.local:9002", cfg.ProfileServiceURL)
	assert.Equal(t, "http://health.local:9003", cfg.HealthServiceURL)
	assert.Equal(t, "http://reco.local:9004", cfg.RecommendationsServiceURL)
	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, int64(0), cfg.DefaultUserID)
	assert.Equal(t, 500*time.Millisecond, cfg.ProfileRedirectDelay)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("SESSION_BACKEND", "memory")
	for _, key := range []string{
		"AUTH_SERVICE_URL", "PROFILE_SERVICE_URL", "HEALTH_SERVICE_URL", "RECOMMENDATIONS_SERVICE_URL",
		"DEFAULT_USER_ID", "DEFAULT_CALORIES_BURNED", "PROFILE_REDIRECT_DELAY", "SERVER_PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.AuthServiceURL)
	assert.Equal(t, "http://localhost:8082", cfg.ProfileServiceURL)
	assert.Equal(t, "http://localhost:8083", cfg.HealthServiceURL)
	assert.Equal(t, "http://localhost:8084", cfg.RecommendationsServiceURL)
	assert.Equal(t, int64(1), cfg.DefaultUserID)
	assert.Equal(t, float64(400), cfg.DefaultCaloriesBurned)
	assert.Equal(t, 2*time.Second, cfg.ProfileRedirectDelay)
	assert.Equal(t, "localhost:4200", cfg.Addr())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "redis_password"), []byte("s3cret\n"), 0o600))
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("SESSION_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.RedisPassword)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:                "4200",
			AuthServiceURL:            "http://localhost:8081",
			ProfileServiceURL:         "http://localhost:8082",
			HealthServiceURL:          "http://localhost:8083",
			RecommendationsServiceURL: "http://localhost:8084",
			SessionBackend:            SessionBackendMemory,
			DefaultUserID:             1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad scheme", mutate: func(c *Config) { c.HealthServiceURL = "ftp://localhost" }, wantErr: "HEALTH_SERVICE_URL"},
		{name: "missing host", mutate: func(c *Config) { c.AuthServiceURL = "http://" }, wantErr: "AUTH_SERVICE_URL"},
		{name: "unknown backend", mutate: func(c *Config) { c.SessionBackend = "etcd" }, wantErr: "SESSION_BACKEND"},
		{name: "sqlite without path", mutate: func(c *Config) { c.SessionBackend = SessionBackendSQLite }, wantErr: "SESSION_SQLITE_PATH"},
		{name: "negative user id", mutate: func(c *Config) { c.DefaultUserID = -1 }, wantErr: "DEFAULT_USER_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

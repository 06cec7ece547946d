package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session storage backends
const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost     string   `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort     string   `env:"SERVER_PORT" envDefault:"4200"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Backend service base URLs
	AuthServiceURL            string `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:8081"`
	ProfileServiceURL         string `env:"PROFILE_SERVICE_URL" envDefault:"http://localhost:8082"`
	HealthServiceURL          string `env:"HEALTH_SERVICE_URL" envDefault:"http://localhost:8083"`
	RecommendationsServiceURL string `env:"RECOMMENDATIONS_SERVICE_URL" envDefault:"http://localhost:8084"`

	// Session storage configuration
	SessionBackend    string `env:"SESSION_BACKEND" envDefault:"sqlite"`
	SessionSQLitePath string `env:"SESSION_SQLITE_PATH"`

	// Redis configuration
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisURL      string `env:"REDIS_URL"`

	// Flow behaviour
	DefaultUserID         int64         `env:"DEFAULT_USER_ID" envDefault:"1"`
	DefaultCaloriesBurned float64       `env:"DEFAULT_CALORIES_BURNED" envDefault:"400"`
	ProfileRedirectDelay  time.Duration `env:"PROFILE_REDIRECT_DELAY" envDefault:"2s"`
	AuthThrottleLimit     int           `env:"AUTH_THROTTLE_LIMIT" envDefault:"10"`

	// Avatar storage
	S3BucketName string `env:"S3_BUCKET_NAME"`
	AWSRegion    string `env:"AWS_REGION"`
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch GetEnvironment() {
	case CI:
		// CI passes everything through environment variables
	case Development, Test, Production:
		loadSecrets(cfg)
	}

	if cfg.SessionSQLitePath == "" && cfg.SessionBackend == SessionBackendSQLite {
		path, err := DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		cfg.SessionSQLitePath = path
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address of the web client
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// loadSecrets overlays Docker secrets on top of the environment
func loadSecrets(cfg *Config) {
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
	if v := readSecret("redis_url"); v != "" {
		cfg.RedisURL = v
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

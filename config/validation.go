package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable
func ValidateConfig(cfg *Config) error {
	var errs []string

	services := []struct {
		field string
		value string
	}{
		{"AUTH_SERVICE_URL", cfg.AuthServiceURL},
		{"PROFILE_SERVICE_URL", cfg.ProfileServiceURL},
		{"HEALTH_SERVICE_URL", cfg.HealthServiceURL},
		{"RECOMMENDATIONS_SERVICE_URL", cfg.RecommendationsServiceURL},
	}
	for _, s := range services {
		if err := validateBaseURL(s.field, s.value); err != nil {
			errs = append(errs, err.Error())
		}
	}

	switch cfg.SessionBackend {
	case SessionBackendSQLite:
		if cfg.SessionSQLitePath == "" {
			errs = append(errs, ValidationError{"SESSION_SQLITE_PATH", "is required for the sqlite session backend"}.Error())
		}
	case SessionBackendRedis, SessionBackendMemory:
	default:
		errs = append(errs, ValidationError{"SESSION_BACKEND", fmt.Sprintf("unknown backend %q", cfg.SessionBackend)}.Error())
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"}.Error())
	}
	if cfg.DefaultUserID < 0 {
		errs = append(errs, ValidationError{"DEFAULT_USER_ID", "must not be negative"}.Error())
	}
	if cfg.DefaultCaloriesBurned < 0 {
		errs = append(errs, ValidationError{"DEFAULT_CALORIES_BURNED", "must not be negative"}.Error())
	}
	if cfg.ProfileRedirectDelay < 0 {
		errs = append(errs, ValidationError{"PROFILE_REDIRECT_DELAY", "must not be negative"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

func validateBaseURL(field, raw string) error {
	if raw == "" {
		return ValidationError{field, "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ValidationError{field, err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ValidationError{field, fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return ValidationError{field, "missing host"}
	}
	return nil
}

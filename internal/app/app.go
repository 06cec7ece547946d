// Package app wires configuration, session storage, backend clients and
// screen flows into one object shared by the web server and the CLI.
package app

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/healthtrack/frontend/config"
	"github.com/pageza/healthtrack/frontend/internal/database"
	"github.com/pageza/healthtrack/frontend/internal/flow"
	"github.com/pageza/healthtrack/frontend/internal/middleware"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/session"
)

type App struct {
	Config  *config.Config
	Session *session.Store

	Auth     *service.AuthService
	Profiles *service.ProfileService
	Health   *service.HealthDataService

	AuthFlow       *flow.AuthFlow
	ProfileFlow    *flow.ProfileFlow
	HealthDataFlow *flow.HealthDataFlow
	PredictionFlow *flow.PredictionFlow

	// Avatars is nil when no S3 bucket is configured
	Avatars *config.S3Config
	// Limiter is nil when auth throttling is disabled or Redis is unreachable
	Limiter *middleware.RateLimiter

	redis *redis.Client
}

// Options override parts of the wiring, mostly for tests
type Options struct {
	HTTPClient *http.Client
	Storage    session.TokenStorage
}

// Build opens the session store and wires every client and flow
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	storage := opts.Storage
	if storage == nil {
		storage = session.OpenStorage(cfg)
	}
	store := session.NewStore(ctx, storage)
	log.Printf("Session storage: %s", store.Backend())

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = service.NewHTTPClient()
	}

	a := &App{
		Config:   cfg,
		Session:  store,
		Auth:     service.NewAuthService(cfg.AuthServiceURL, store, httpClient),
		Profiles: service.NewProfileService(cfg.ProfileServiceURL, store, httpClient),
		Health:   service.NewHealthDataService(cfg.HealthServiceURL, cfg.RecommendationsServiceURL, store, httpClient),
	}

	if cfg.AuthThrottleLimit > 0 && (cfg.SessionBackend == config.SessionBackendRedis || cfg.RedisURL != "") {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("warning: auth throttling disabled: %v", err)
		} else {
			a.redis = client
			a.Limiter = middleware.NewAuthRateLimiter(client, cfg.AuthThrottleLimit)
		}
	}

	avatars, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Printf("warning: avatar uploads disabled: %v", err)
	} else if avatars != nil {
		a.Avatars = avatars
	}

	var limiter flow.Limiter
	if a.Limiter != nil {
		limiter = a.Limiter
	}
	a.AuthFlow = flow.NewAuthFlow(a.Auth, store, limiter)
	a.ProfileFlow = flow.NewProfileFlow(a.Profiles, store, cfg.DefaultUserID, cfg.ProfileRedirectDelay)
	a.HealthDataFlow = flow.NewHealthDataFlow(a.Health, a.Profiles, store, cfg.DefaultUserID, cfg.DefaultCaloriesBurned)
	a.PredictionFlow = flow.NewPredictionFlow(a.Health, store)

	return a, nil
}

// Logout ends the session and drops per-user screen state
func (a *App) Logout(ctx context.Context) flow.Screen {
	a.ProfileFlow.Reset()
	return a.AuthFlow.Logout(ctx)
}

// Close releases the session storage and the throttle's Redis client
func (a *App) Close() error {
	var errs []error
	if err := a.Session.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

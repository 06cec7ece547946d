package service

import (
	"context"
	"encoding/json"

	"github.com/pageza/healthtrack/frontend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	Endpoint() Endpoint
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*types.UserProfile, error)
	SaveProfile(ctx context.Context, profile types.UserProfile) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, update types.ProfileUpdate) (*types.UserProfile, error)
	Endpoint() Endpoint
}

// IHealthDataService defines the interface for daily health data and predictions
type IHealthDataService interface {
	SaveHealthData(ctx context.Context, userID int64, record types.HealthData) (*types.HealthData, error)
	GetTodayHealthData(ctx context.Context, userID int64) (*types.HealthData, error)
	GetHealthDataHistory(ctx context.Context, userID int64) ([]types.HealthData, error)
	GetCaloriesBurnedPrediction(ctx context.Context, userID int64) (json.RawMessage, error)
	Endpoint() Endpoint
	RecommendationsEndpoint() Endpoint
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IHealthDataService = (*HealthDataService)(nil)
)

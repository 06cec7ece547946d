package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pageza/healthtrack/frontend/internal/types"
)

type HealthDataService struct {
	health          *client
	recommendations *client
}

func NewHealthDataService(healthURL, recommendationsURL string, tokens TokenSource, httpClient *http.Client) *HealthDataService {
	return &HealthDataService{
		health:          newClient("health-data-service", healthURL, tokens, httpClient),
		recommendations: newClient("recommendations-service", recommendationsURL, tokens, httpClient),
	}
}

func (s *HealthDataService) Endpoint() Endpoint {
	return s.health.endpoint
}

func (s *HealthDataService) RecommendationsEndpoint() Endpoint {
	return s.recommendations.endpoint
}

// SaveHealthData upserts the record for its date
func (s *HealthDataService) SaveHealthData(ctx context.Context, userID int64, record types.HealthData) (*types.HealthData, error) {
	var saved types.HealthData
	if err := s.health.do(ctx, http.MethodPost, fmt.Sprintf("/api/health/%d", userID), record, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetTodayHealthData returns today's record, or an error matching ErrNotFound
func (s *HealthDataService) GetTodayHealthData(ctx context.Context, userID int64) (*types.HealthData, error) {
	var record types.HealthData
	if err := s.health.do(ctx, http.MethodGet, fmt.Sprintf("/api/health/%d/today", userID), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *HealthDataService) GetHealthDataHistory(ctx context.Context, userID int64) ([]types.HealthData, error) {
	var records []types.HealthData
	if err := s.health.do(ctx, http.MethodGet, fmt.Sprintf("/api/health/%d/history", userID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetCaloriesBurnedPrediction returns the recommendation service's answer
// untouched; see package prediction for how it is read.
func (s *HealthDataService) GetCaloriesBurnedPrediction(ctx context.Context, userID int64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.recommendations.do(ctx, http.MethodGet, fmt.Sprintf("/api/recommendations/%d", userID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

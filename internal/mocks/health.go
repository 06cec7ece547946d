package mocks

import (
	"context"
	"encoding/json"

	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockHealthDataService is a mock implementation of the HealthDataService interface
type MockHealthDataService struct {
	mock.Mock
}

func (m *MockHealthDataService) SaveHealthData(ctx context.Context, userID int64, record types.HealthData) (*types.HealthData, error) {
	args := m.Called(ctx, userID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HealthData), args.Error(1)
}

func (m *MockHealthDataService) GetTodayHealthData(ctx context.Context, userID int64) (*types.HealthData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HealthData), args.Error(1)
}

func (m *MockHealthDataService) GetHealthDataHistory(ctx context.Context, userID int64) ([]types.HealthData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.HealthData), args.Error(1)
}

func (m *MockHealthDataService) GetCaloriesBurnedPrediction(ctx context.Context, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockHealthDataService) Endpoint() service.Endpoint {
	return service.Endpoint{Name: "health-data-service", BaseURL: "http://localhost:8083"}
}

func (m *MockHealthDataService) RecommendationsEndpoint() service.Endpoint {
	return service.Endpoint{Name: "recommendations-service", BaseURL: "http://localhost:8084"}
}

var _ service.IHealthDataService = (*MockHealthDataService)(nil)

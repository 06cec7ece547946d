package mocks

import (
	"context"

	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Endpoint() service.Endpoint {
	return service.Endpoint{Name: "auth-service", BaseURL: "http://localhost:8081"}
}

var _ service.IAuthService = (*MockAuthService)(nil)

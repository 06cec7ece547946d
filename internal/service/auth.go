package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/pageza/healthtrack/frontend/internal/types"
)

// TokenStore is the part of the session store the auth client writes to
type TokenStore interface {
	TokenSource
	SetToken(ctx context.Context, token string)
}

type AuthService struct {
	client *client
	store  TokenStore
}

func NewAuthService(baseURL string, store TokenStore, httpClient *http.Client) *AuthService {
	return &AuthService{
		client: newClient("auth-service", baseURL, store, httpClient),
		store:  store,
	}
}

// Endpoint describes the auth service this client talks to
func (s *AuthService) Endpoint() Endpoint {
	return s.client.endpoint
}

// Login exchanges credentials for a token and stores it in the session
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	req := types.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	return s.authenticate(ctx, "/auth/login", req)
}

// Register creates an account and stores the returned token in the session
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	req := types.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	return s.authenticate(ctx, "/auth/register", req)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (string, error) {
	var resp types.AuthResponse
	if err := s.client.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	s.store.SetToken(ctx, resp.Token)
	return resp.Token, nil
}

package flow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pageza/healthtrack/frontend/internal/mocks"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func TestAuthFlowEnter(t *testing.T) {
	f := NewAuthFlow(new(mocks.MockAuthService), signedIn(1), nil)
	assert.Equal(t, RouteHome, f.Enter(ModeLogin).Redirect)

	f = NewAuthFlow(new(mocks.MockAuthService), &fakeSession{}, nil)
	view := f.Enter(ModeRegister)
	assert.Empty(t, view.Redirect)
	assert.Equal(t, ModeRegister, view.Mode)
}

func TestAuthFlowLoginSuccess(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Login", mock.Anything, "jane@example.com", "secret1").Return("tok", nil)
	limiter := &stubLimiter{allowed: true}

	f := NewAuthFlow(auth, &fakeSession{}, limiter)
	view := f.Submit(context.Background(), ModeLogin, AuthForm{Email: "jane@example.com", Password: "secret1"}, "127.0.0.1")

	assert.Equal(t, RouteProfile, view.Redirect)
	assert.Empty(t, view.Error)
	assert.Equal(t, []string{"127.0.0.1"}, limiter.keys)
	assert.False(t, f.Loading())
	auth.AssertExpectations(t)
}

func TestAuthFlowRegister(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Register", mock.Anything, "Jane", "jane@example.com", "secret1").Return("tok", nil)

	f := NewAuthFlow(auth, &fakeSession{}, nil)
	view := f.Submit(context.Background(), ModeRegister, AuthForm{Name: "Jane", Email: "jane@example.com", Password: "secret1"}, "")
	assert.Equal(t, RouteProfile, view.Redirect)
	auth.AssertExpectations(t)
}

func TestAuthFlowValidationSkipsRequest(t *testing.T) {
	auth := new(mocks.MockAuthService)
	f := NewAuthFlow(auth, &fakeSession{}, nil)

	view := f.Submit(context.Background(), ModeRegister, AuthForm{Email: "jane@example.com", Password: "secret1"}, "")
	assert.Contains(t, view.Fields, "name")
	assert.Empty(t, view.Redirect)
	auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthFlowErrors(t *testing.T) {
	tests := []struct {
		name string
		mode AuthMode
		err  error
		want string
	}{
		{"bad credentials", ModeLogin, &service.APIError{StatusCode: http.StatusUnauthorized}, MsgInvalidLogin},
		{"forbidden login", ModeLogin, &service.APIError{StatusCode: http.StatusForbidden}, MsgInvalidLogin},
		{"duplicate account", ModeRegister, &service.APIError{StatusCode: http.StatusConflict}, MsgAccountExists},
		{"server", ModeLogin, &service.APIError{StatusCode: http.StatusBadGateway}, MsgServerError},
		{"empty token", ModeLogin, service.ErrEmptyToken, MsgAuthenticateFail},
		{"unreachable", ModeLogin, &service.NetworkError{Err: errors.New("connection refused")},
			"Cannot reach auth-service at http://localhost:8081. Check that it is running on port 8081."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mocks.MockAuthService)
			auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return("", tt.err).Maybe()
			auth.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", tt.err).Maybe()

			f := NewAuthFlow(auth, &fakeSession{}, nil)
			view := f.Submit(context.Background(), tt.mode, AuthForm{Name: "Jane", Email: "jane@example.com", Password: "secret1"}, "")
			assert.Equal(t, tt.want, view.Error)
			assert.Empty(t, view.Redirect)
			assert.Empty(t, view.Form.Password)
			assert.False(t, f.Loading())
		})
	}
}

func TestAuthFlowThrottled(t *testing.T) {
	auth := new(mocks.MockAuthService)
	f := NewAuthFlow(auth, &fakeSession{}, &stubLimiter{allowed: false})

	view := f.Submit(context.Background(), ModeLogin, AuthForm{Email: "jane@example.com", Password: "secret1"}, "10.0.0.1")
	assert.Equal(t, MsgThrottled, view.Error)
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthFlowThrottleFailureIsIgnored(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Login", mock.Anything, "jane@example.com", "secret1").Return("tok", nil)
	f := NewAuthFlow(auth, &fakeSession{}, &stubLimiter{err: errors.New("redis down")})

	view := f.Submit(context.Background(), ModeLogin, AuthForm{Email: "jane@example.com", Password: "secret1"}, "10.0.0.1")
	assert.Equal(t, RouteProfile, view.Redirect)
}

func TestAuthFlowLogout(t *testing.T) {
	s := signedIn(3)
	f := NewAuthFlow(new(mocks.MockAuthService), s, nil)

	screen := f.Logout(context.Background())
	assert.Equal(t, RouteAuth, screen.Redirect)
	assert.True(t, s.loggedOut)
	assert.False(t, s.IsAuthenticated())
}

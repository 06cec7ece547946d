package flow

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/pageza/healthtrack/frontend/internal/service"
)

// Limiter throttles authentication attempts per client
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type AuthView struct {
	Screen
	Mode AuthMode
	Form AuthForm
}

// AuthFlow drives the sign-in / sign-up screen and logout
type AuthFlow struct {
	auth    service.IAuthService
	session Session
	limiter Limiter
	loading Loading
}

// NewAuthFlow creates the auth flow. limiter may be nil.
func NewAuthFlow(auth service.IAuthService, session Session, limiter Limiter) *AuthFlow {
	return &AuthFlow{auth: auth, session: session, limiter: limiter}
}

// Enter shows the auth screen, or sends an authenticated user home
func (f *AuthFlow) Enter(mode AuthMode) AuthView {
	if f.session.IsAuthenticated() {
		return AuthView{Screen: redirectTo(RouteHome), Mode: mode}
	}
	return AuthView{Mode: mode}
}

// Submit signs in or registers. clientKey identifies the caller for throttling.
func (f *AuthFlow) Submit(ctx context.Context, mode AuthMode, form AuthForm, clientKey string) AuthView {
	view := AuthView{Mode: mode, Form: AuthForm{Name: form.Name, Email: form.Email}}

	if errs := form.Validate(mode); len(errs) > 0 {
		view.Fields = errs
		return view
	}

	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	if f.limiter != nil {
		allowed, err := f.limiter.Allow(ctx, clientKey)
		if err != nil {
			log.Printf("warning: auth throttle check failed: %v", err)
		} else if !allowed {
			view.Error = MsgThrottled
			return view
		}
	}

	if mode == ModeRegister {
		_, err = f.auth.Register(ctx, form.Name, form.Email, form.Password)
	} else {
		_, err = f.auth.Login(ctx, form.Email, form.Password)
	}
	if err != nil {
		log.Printf("%s failed: %v", mode, err)
		view.Error = f.authMessage(mode, err)
		return view
	}

	view.Screen = redirectTo(RouteProfile)
	return view
}

func (f *AuthFlow) authMessage(mode AuthMode, err error) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		switch {
		case mode == ModeLogin && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden):
			return MsgInvalidLogin
		case mode == ModeRegister && service.IsConflict(err):
			return MsgAccountExists
		}
	}
	if errors.Is(err, service.ErrEmptyToken) {
		return MsgAuthenticateFail
	}
	return UserMessage(err, f.auth.Endpoint(), MsgAuthenticateFail)
}

// Logout ends the session and returns to the auth screen
func (f *AuthFlow) Logout(ctx context.Context) Screen {
	f.session.Logout(ctx)
	return redirectTo(RouteAuth)
}

// Loading reports whether a sign-in is in flight
func (f *AuthFlow) Loading() bool {
	return f.loading.Active()
}

// Package flow holds the screen orchestration of the client: what each
// screen loads on entry, what a submission sends, and where the user goes
// next. Flows are long-lived and shared by the web server and the CLI.
package flow

import (
	"context"
	"log"
	"time"
)

const (
	RouteAuth       = "/auth"
	RouteHome       = "/home"
	RouteProfile    = "/profile"
	RouteHealthData = "/health-data"
	RouteHistory    = "/health-data/history"
	RoutePrediction = "/prediction"
)

// MsgUserIDUnavailable is shown when no user id can be derived and no default applies
const MsgUserIDUnavailable = "User id unavailable. Please sign in again."

// Session is the part of the session store the flows read
type Session interface {
	IsAuthenticated() bool
	UserID() (int64, bool)
	Logout(ctx context.Context)
}

// Screen is the outcome of entering a screen or submitting it
type Screen struct {
	// Redirect is set when the user should leave the screen
	Redirect string
	// RedirectAfter delays Redirect so a success message stays visible
	RedirectAfter time.Duration
	Success       string
	Error         string
	Fields        FieldErrors
}

// Redirected reports whether the screen should not be rendered as is
func (s Screen) Redirected() bool {
	return s.Redirect != "" && s.RedirectAfter == 0
}

func redirectTo(route string) Screen {
	return Screen{Redirect: route}
}

// resolveUserID derives the user id from the session, falling back to
// defaultID when the token carries none. A zero defaultID disables the fallback.
func resolveUserID(s Session, defaultID int64) (int64, bool) {
	if id, ok := s.UserID(); ok {
		return id, true
	}
	if defaultID <= 0 {
		return 0, false
	}
	log.Printf("warning: could not derive user id from token, using default id %d", defaultID)
	return defaultID, true
}

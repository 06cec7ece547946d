package flow

import (
	"errors"
	"sync"
)

// ErrBusy is returned when a screen already has a request in flight
var ErrBusy = errors.New("a request is already in progress")

// MsgBusy is the user-facing text for ErrBusy
const MsgBusy = "A request is already in progress. Please wait."

// Loading admits at most one in-flight action per screen
type Loading struct {
	mu     sync.Mutex
	active bool
}

// Begin marks the screen as loading. The returned release func must be
// deferred; it clears the flag whatever the outcome of the action.
func (l *Loading) Begin() (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active {
		return nil, ErrBusy
	}
	l.active = true

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.active = false
			l.mu.Unlock()
		})
	}, nil
}

// Active reports whether an action is in flight
func (l *Loading) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

package flow

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
)

// ProfileState is the position of the profile screen in its lifecycle
type ProfileState int

const (
	ProfileNoProfile ProfileState = iota
	ProfileSubmitting
	ProfileConflictRetry
	ProfileSaved
	ProfileFailed
)

func (s ProfileState) String() string {
	switch s {
	case ProfileSubmitting:
		return "submitting"
	case ProfileConflictRetry:
		return "conflict_retry"
	case ProfileSaved:
		return "saved"
	case ProfileFailed:
		return "failed"
	default:
		return "no_profile"
	}
}

type ProfileView struct {
	Screen
	State ProfileState
	Form  ProfileForm
}

type ProfileFlow struct {
	profiles      service.IProfileService
	session       Session
	defaultUserID int64
	redirectDelay time.Duration
	loading       Loading

	// exists and authUserID describe owner's profile only
	mu         sync.Mutex
	state      ProfileState
	owner      int64
	exists     bool
	authUserID int64
}

func NewProfileFlow(profiles service.IProfileService, session Session, defaultUserID int64, redirectDelay time.Duration) *ProfileFlow {
	return &ProfileFlow{
		profiles:      profiles,
		session:       session,
		defaultUserID: defaultUserID,
		redirectDelay: redirectDelay,
	}
}

// Enter looks up the user's profile. An existing profile skips the form
// and moves on to health data; anything else shows an empty form.
func (f *ProfileFlow) Enter(ctx context.Context) ProfileView {
	if !f.session.IsAuthenticated() {
		return ProfileView{Screen: redirectTo(RouteAuth)}
	}
	userID, ok := resolveUserID(f.session, f.defaultUserID)
	if !ok {
		return ProfileView{Screen: Screen{Error: MsgUserIDUnavailable}}
	}

	profile, err := f.profiles.GetProfile(ctx, userID)
	switch {
	case err == nil:
		id := userID
		if profile.AuthUserID != 0 {
			id = profile.AuthUserID
		}
		f.set(ProfileSaved, userID, true, id)
		return ProfileView{Screen: redirectTo(RouteHealthData), State: ProfileSaved}
	case service.IsNotFound(err):
		log.Printf("no profile for user %d, showing creation form", userID)
	default:
		log.Printf("error loading profile for user %d: %v", userID, err)
	}
	f.set(ProfileNoProfile, userID, false, userID)
	return ProfileView{State: ProfileNoProfile}
}

// Submit creates the profile, or updates it when it is known to exist.
// A create rejected as a duplicate is retried once as an update.
func (f *ProfileFlow) Submit(ctx context.Context, form ProfileForm) ProfileView {
	view := ProfileView{Form: form, State: f.State()}
	if !f.session.IsAuthenticated() {
		view.Screen = redirectTo(RouteAuth)
		return view
	}

	userID, ok := resolveUserID(f.session, f.defaultUserID)
	if !ok {
		view.Error = MsgUserIDUnavailable
		return view
	}
	exists, targetID := f.known(userID)
	view.State = f.State()

	profile, errs := form.Profile()
	if len(errs) > 0 {
		view.Fields = errs
		return view
	}
	profile.AuthUserID = targetID

	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	f.transition(ProfileSubmitting)

	var saved *types.UserProfile
	success := MsgProfileSaved
	if exists {
		saved, err = f.profiles.UpdateProfile(ctx, targetID, profile.AsUpdate())
	} else {
		saved, err = f.profiles.SaveProfile(ctx, profile)
		if err != nil && service.IsConflict(err) {
			log.Printf("profile for user %d already exists, retrying as update", targetID)
			f.transition(ProfileConflictRetry)
			saved, err = f.profiles.UpdateProfile(ctx, targetID, profile.AsUpdate())
			success = MsgProfileUpdated
		}
	}
	if err != nil {
		log.Printf("error saving profile for user %d: %v", userID, err)
		f.transition(ProfileFailed)
		view.State = ProfileFailed
		view.Error = UserMessage(err, f.profiles.Endpoint(), MsgSaveProfileFail)
		return view
	}

	id := targetID
	if saved != nil && saved.AuthUserID != 0 {
		id = saved.AuthUserID
	}
	f.set(ProfileSaved, userID, true, id)
	view.State = ProfileSaved
	view.Success = success
	view.Redirect = RouteHealthData
	view.RedirectAfter = f.redirectDelay
	return view
}

// State returns the current lifecycle state
func (f *ProfileFlow) State() ProfileState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Loading reports whether a save is in flight
func (f *ProfileFlow) Loading() bool {
	return f.loading.Active()
}

// Reset forgets what is known about the signed-in user's profile
func (f *ProfileFlow) Reset() {
	f.set(ProfileNoProfile, 0, false, 0)
}

// known reports whether userID's profile is known to exist and the id it
// is stored under. State cached for another user is dropped.
func (f *ProfileFlow) known(userID int64) (bool, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.owner != userID {
		f.state = ProfileNoProfile
		f.owner = userID
		f.exists = false
		f.authUserID = userID
	}
	if f.authUserID == 0 {
		f.authUserID = userID
	}
	return f.exists, f.authUserID
}

func (f *ProfileFlow) transition(s ProfileState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *ProfileFlow) set(s ProfileState, owner int64, exists bool, authUserID int64) {
	f.mu.Lock()
	f.state = s
	f.owner = owner
	f.exists = exists
	f.authUserID = authUserID
	f.mu.Unlock()
}

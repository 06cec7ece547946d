package flow

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/healthtrack/frontend/internal/prediction"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
)

type HealthDataView struct {
	Screen
	UserID int64
	Form   HealthDataForm
}

type HistoryView struct {
	Screen
	UserID  int64
	Records []types.HealthData
}

type HealthDataFlow struct {
	health        service.IHealthDataService
	profiles      service.IProfileService
	session       Session
	defaultUserID int64
	defaultBurned float64
	loading       Loading
	now           func() time.Time
}

func NewHealthDataFlow(health service.IHealthDataService, profiles service.IProfileService, session Session, defaultUserID int64, defaultCaloriesBurned float64) *HealthDataFlow {
	return &HealthDataFlow{
		health:        health,
		profiles:      profiles,
		session:       session,
		defaultUserID: defaultUserID,
		defaultBurned: defaultCaloriesBurned,
		now:           time.Now,
	}
}

// Enter loads the profile and today's record concurrently to prefill the
// form. Missing data is normal; other failures are logged and ignored.
func (f *HealthDataFlow) Enter(ctx context.Context) HealthDataView {
	if !f.session.IsAuthenticated() {
		return HealthDataView{Screen: redirectTo(RouteAuth)}
	}
	userID, ok := resolveUserID(f.session, f.defaultUserID)
	if !ok {
		return HealthDataView{Screen: Screen{Error: MsgUserIDUnavailable}, Form: NewHealthDataForm(f.now())}
	}

	var (
		profile *types.UserProfile
		today   *types.HealthData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := f.profiles.GetProfile(gctx, userID)
		if err != nil {
			f.logLoadError("profile", f.profiles.Endpoint(), userID, err)
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		r, err := f.health.GetTodayHealthData(gctx, userID)
		if err != nil {
			f.logLoadError("today's health data", f.health.Endpoint(), userID, err)
			return nil
		}
		today = r
		return nil
	})
	_ = g.Wait()

	form := NewHealthDataForm(f.now())
	form.ApplyProfile(profile)
	form.ApplyRecord(today)
	return HealthDataView{UserID: userID, Form: form}
}

func (f *HealthDataFlow) logLoadError(what string, ep service.Endpoint, userID int64, err error) {
	switch service.Classify(err) {
	case service.KindNotFound:
	case service.KindNetwork:
		log.Printf("warning: %s is not reachable, make sure it is running on port %s: %v", ep.Name, ep.Port(), err)
	default:
		log.Printf("error loading %s for user %d: %v", what, userID, err)
	}
}

// Submit validates and saves the form. An empty calories-burned field is
// filled with the configured default first.
func (f *HealthDataFlow) Submit(ctx context.Context, form HealthDataForm) HealthDataView {
	view, userID, ok := f.begin(form)
	if !ok {
		return view
	}
	if strings.TrimSpace(form.CaloriesBurned) == "" {
		form.CaloriesBurned = formatFloat(f.defaultBurned)
		view.Form = form
	}

	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	return f.save(ctx, view, userID)
}

// PredictAndSave asks for a calories-burned prediction, writes it into the
// form and saves. Nothing is saved when the prediction cannot be read.
func (f *HealthDataFlow) PredictAndSave(ctx context.Context, form HealthDataForm) HealthDataView {
	view, userID, ok := f.begin(form)
	if !ok {
		return view
	}

	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	calories, err := f.predict(ctx, userID)
	if err != nil {
		view.Error = UserMessage(err, f.health.RecommendationsEndpoint(), MsgPredictionFail)
		return view
	}
	view.Form.CaloriesBurned = strconv.Itoa(calories)
	return f.save(ctx, view, userID)
}

// Predict asks for a prediction and sends the user to the result screen
func (f *HealthDataFlow) Predict(ctx context.Context, form HealthDataForm) HealthDataView {
	view, userID, ok := f.begin(form)
	if !ok {
		return view
	}

	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	calories, err := f.predict(ctx, userID)
	if err != nil {
		view.Error = UserMessage(err, f.health.RecommendationsEndpoint(), MsgPredictionFail)
		return view
	}
	view.Redirect = PredictionURL(calories)
	return view
}

// History lists past records
func (f *HealthDataFlow) History(ctx context.Context) HistoryView {
	if !f.session.IsAuthenticated() {
		return HistoryView{Screen: redirectTo(RouteAuth)}
	}
	userID, ok := resolveUserID(f.session, f.defaultUserID)
	if !ok {
		return HistoryView{Screen: Screen{Error: MsgUserIDUnavailable}}
	}
	records, err := f.health.GetHealthDataHistory(ctx, userID)
	if err != nil {
		log.Printf("error loading health data history for user %d: %v", userID, err)
		return HistoryView{UserID: userID, Screen: Screen{Error: UserMessage(err, f.health.Endpoint(), MsgLoadHistoryFail)}}
	}
	return HistoryView{UserID: userID, Records: records}
}

// Loading reports whether a save or prediction is in flight
func (f *HealthDataFlow) Loading() bool {
	return f.loading.Active()
}

func (f *HealthDataFlow) begin(form HealthDataForm) (HealthDataView, int64, bool) {
	view := HealthDataView{Form: form}
	if !f.session.IsAuthenticated() {
		view.Screen = redirectTo(RouteAuth)
		return view, 0, false
	}
	userID, ok := resolveUserID(f.session, f.defaultUserID)
	if !ok {
		view.Error = MsgUserIDUnavailable
		return view, 0, false
	}
	view.UserID = userID
	return view, userID, true
}

func (f *HealthDataFlow) save(ctx context.Context, view HealthDataView, userID int64) HealthDataView {
	record, errs := view.Form.Record()
	if len(errs) > 0 {
		view.Fields = errs
		return view
	}
	if _, err := f.health.SaveHealthData(ctx, userID, record); err != nil {
		log.Printf("error saving health data for user %d: %v", userID, err)
		view.Error = UserMessage(err, f.health.Endpoint(), MsgSaveHealthFail)
		return view
	}
	view.Success = MsgHealthDataSaved
	return view
}

func (f *HealthDataFlow) predict(ctx context.Context, userID int64) (int, error) {
	raw, err := f.health.GetCaloriesBurnedPrediction(ctx, userID)
	if err != nil {
		log.Printf("error requesting prediction for user %d: %v", userID, err)
		return 0, err
	}
	calories, err := prediction.ParseRounded(raw)
	if err != nil {
		log.Printf("unexpected prediction response for user %d: %s", userID, raw)
		return 0, fmt.Errorf("read prediction: %w", err)
	}
	return calories, nil
}

// PredictionURL is the result screen showing the given calories
func PredictionURL(calories int) string {
	return RoutePrediction + "?" + url.Values{"prediction": {strconv.Itoa(calories)}}.Encode()
}

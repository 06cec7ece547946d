package flow

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/healthtrack/frontend/internal/prediction"
	"github.com/pageza/healthtrack/frontend/internal/service"
)

type PredictionView struct {
	Screen
	Calories  int
	HasResult bool
	Date      string
}

// PredictionFlow shows a calories-burned prediction
type PredictionFlow struct {
	health  service.IHealthDataService
	session Session
	loading Loading
	now     func() time.Time
}

func NewPredictionFlow(health service.IHealthDataService, session Session) *PredictionFlow {
	return &PredictionFlow{health: health, session: session, now: time.Now}
}

// Enter shows the prediction carried by param, or requests a new one when
// param is empty or not a number. No default user id applies here.
func (f *PredictionFlow) Enter(ctx context.Context, param string) PredictionView {
	if !f.session.IsAuthenticated() {
		return PredictionView{Screen: redirectTo(RouteAuth)}
	}
	view := PredictionView{Date: f.now().Format("January 2, 2006")}
	userID, ok := f.session.UserID()
	if !ok {
		view.Error = MsgUserIDUnavailable
		return view
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(param), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		view.Calories = prediction.Round(v)
		view.HasResult = true
		return view
	}
	return f.load(ctx, view, userID)
}

// Retry requests a fresh prediction
func (f *PredictionFlow) Retry(ctx context.Context) PredictionView {
	return f.Enter(ctx, "")
}

// Loading reports whether a prediction is in flight
func (f *PredictionFlow) Loading() bool {
	return f.loading.Active()
}

func (f *PredictionFlow) load(ctx context.Context, view PredictionView, userID int64) PredictionView {
	release, err := f.loading.Begin()
	if err != nil {
		view.Error = MsgBusy
		return view
	}
	defer release()

	raw, err := f.health.GetCaloriesBurnedPrediction(ctx, userID)
	if err != nil {
		view.Error = UserMessage(err, f.health.RecommendationsEndpoint(), MsgPredictionFail)
		return view
	}
	calories, err := prediction.ParseRounded(raw)
	if err != nil {
		view.Error = UserMessage(err, f.health.RecommendationsEndpoint(), MsgPredictionFail)
		return view
	}
	view.Calories = calories
	view.HasResult = true
	return view
}

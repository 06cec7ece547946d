package flow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/pageza/healthtrack/frontend/internal/mocks"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHealthFlow(health *mocks.MockHealthDataService, profiles *mocks.MockProfileService, s Session) *HealthDataFlow {
	f := NewHealthDataFlow(health, profiles, s, 1, 400)
	f.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	return f
}

func recordFrom(t *testing.T, form HealthDataForm) types.HealthData {
	t.Helper()
	r, errs := form.Record()
	require.Empty(t, errs)
	return r
}

func TestHealthDataFlowEnterRedirectsWhenSignedOut(t *testing.T) {
	f := newHealthFlow(new(mocks.MockHealthDataService), new(mocks.MockProfileService), &fakeSession{})
	assert.Equal(t, RouteAuth, f.Enter(context.Background()).Redirect)
}

func TestHealthDataFlowEnterPrefills(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, int64(4)).Return(&types.UserProfile{Weight: 66}, nil)
	health.On("GetTodayHealthData", mock.Anything, int64(4)).Return(&types.HealthData{Weight: 65.5, Steps: 4000, DietType: types.DietKeto}, nil)

	view := newHealthFlow(health, profiles, signedIn(4)).Enter(context.Background())
	assert.Equal(t, int64(4), view.UserID)
	assert.Equal(t, "2026-10-19", view.Form.Date)
	assert.Equal(t, "65.5", view.Form.Weight)
	assert.Equal(t, "4000", view.Form.Steps)
	assert.Equal(t, "Keto", view.Form.DietType)
}

func TestHealthDataFlowEnterToleratesMissingData(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, int64(1)).Return(&types.UserProfile{Weight: 66}, nil)
	health.On("GetTodayHealthData", mock.Anything, int64(1)).Return(nil, errNotFound)

	view := newHealthFlow(health, profiles, signedIn(0)).Enter(context.Background())
	assert.Empty(t, view.Error)
	assert.Equal(t, int64(1), view.UserID)
	assert.Equal(t, "66", view.Form.Weight)
	assert.Empty(t, view.Form.Steps)
}

func TestHealthDataFlowEnterIgnoresFailures(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, int64(2)).Return(nil, &service.NetworkError{Err: errors.New("connection refused")})
	health.On("GetTodayHealthData", mock.Anything, int64(2)).Return(nil, &service.APIError{StatusCode: http.StatusInternalServerError})

	view := newHealthFlow(health, profiles, signedIn(2)).Enter(context.Background())
	assert.Empty(t, view.Error)
	assert.Empty(t, view.Redirect)
	assert.Equal(t, "2026-10-19", view.Form.Date)
}

func TestHealthDataFlowSubmitDefaultsCaloriesBurned(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	form := validHealthForm()
	form.CaloriesBurned = " "

	want := recordFrom(t, validHealthForm())
	want.CaloriesBurned = 400
	health.On("SaveHealthData", mock.Anything, int64(4), want).Return(&want, nil).Once()

	f := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4))
	view := f.Submit(context.Background(), form)
	assert.Equal(t, MsgHealthDataSaved, view.Success)
	assert.Equal(t, "400", view.Form.CaloriesBurned)
	assert.False(t, f.Loading())
	health.AssertExpectations(t)
}

func TestHealthDataFlowSubmitInvalid(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	form := validHealthForm()
	form.Weight = ""
	form.WorkoutType = ""

	view := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4)).Submit(context.Background(), form)
	assert.Equal(t, "This field is required", view.Fields["weight"])
	assert.Equal(t, "This field is required", view.Fields["workoutType"])
	health.AssertNotCalled(t, "SaveHealthData", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthDataFlowSubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unreachable", &service.NetworkError{Err: errors.New("connection refused")},
			"Cannot reach health-data-service at http://localhost:8083. Check that it is running on port 8083."},
		{"expired", &service.APIError{StatusCode: http.StatusUnauthorized}, MsgSessionExpired},
		{"forbidden", &service.APIError{StatusCode: http.StatusForbidden}, MsgForbidden},
		{"not found", &service.APIError{StatusCode: http.StatusNotFound}, MsgNotFound},
		{"server", &service.APIError{StatusCode: http.StatusInternalServerError}, MsgServerError},
		{"server message", &service.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "date in the future"}, "date in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			health := new(mocks.MockHealthDataService)
			health.On("SaveHealthData", mock.Anything, int64(4), mock.Anything).Return(nil, tt.err)

			f := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4))
			view := f.Submit(context.Background(), validHealthForm())
			assert.Equal(t, tt.want, view.Error)
			assert.Empty(t, view.Success)
			assert.False(t, f.Loading())
		})
	}
}

func TestHealthDataFlowPredictAndSave(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	health.On("GetCaloriesBurnedPrediction", mock.Anything, int64(4)).Return(json.RawMessage(`{"data":{"prediction":41.6}}`), nil)

	want := recordFrom(t, validHealthForm())
	want.CaloriesBurned = 42
	health.On("SaveHealthData", mock.Anything, int64(4), want).Return(&want, nil).Once()

	f := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4))
	view := f.PredictAndSave(context.Background(), validHealthForm())
	assert.Equal(t, MsgHealthDataSaved, view.Success)
	assert.Equal(t, "42", view.Form.CaloriesBurned)
	assert.False(t, f.Loading())
	health.AssertExpectations(t)
}

func TestHealthDataFlowPredictAndSaveUnparseable(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	health.On("GetCaloriesBurnedPrediction", mock.Anything, int64(4)).Return(json.RawMessage(`{"foo":"bar"}`), nil)

	f := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4))
	view := f.PredictAndSave(context.Background(), validHealthForm())
	assert.Contains(t, view.Error, `received: {"foo":"bar"}`)
	assert.Equal(t, "350", view.Form.CaloriesBurned)
	assert.False(t, f.Loading())
	health.AssertNotCalled(t, "SaveHealthData", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthDataFlowPredictAndSaveUnreachable(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	health.On("GetCaloriesBurnedPrediction", mock.Anything, int64(4)).Return(nil, &service.NetworkError{Err: errors.New("connection refused")})

	view := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4)).PredictAndSave(context.Background(), validHealthForm())
	assert.Equal(t, "Cannot reach recommendations-service at http://localhost:8084. Check that it is running on port 8084.", view.Error)
}

func TestHealthDataFlowPredict(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	health.On("GetCaloriesBurnedPrediction", mock.Anything, int64(4)).Return(json.RawMessage(`"512.5"`), nil)

	view := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4)).Predict(context.Background(), validHealthForm())
	assert.Equal(t, "/prediction?prediction=513", view.Redirect)
	health.AssertNotCalled(t, "SaveHealthData", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthDataFlowBusy(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	f := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4))

	release, err := f.loading.Begin()
	require.NoError(t, err)
	defer release()

	view := f.Submit(context.Background(), validHealthForm())
	assert.Equal(t, MsgBusy, view.Error)
	health.AssertNotCalled(t, "SaveHealthData", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthDataFlowHistory(t *testing.T) {
	health := new(mocks.MockHealthDataService)
	records := []types.HealthData{{Date: "2026-10-18"}, {Date: "2026-10-17"}}
	health.On("GetHealthDataHistory", mock.Anything, int64(4)).Return(records, nil)

	view := newHealthFlow(health, new(mocks.MockProfileService), signedIn(4)).History(context.Background())
	assert.Equal(t, records, view.Records)
	assert.Empty(t, view.Error)

	failing := new(mocks.MockHealthDataService)
	failing.On("GetHealthDataHistory", mock.Anything, int64(4)).Return(nil, &service.APIError{StatusCode: http.StatusInternalServerError})
	view = newHealthFlow(failing, new(mocks.MockProfileService), signedIn(4)).History(context.Background())
	assert.Equal(t, MsgServerError, view.Error)
}

func TestPredictionURL(t *testing.T) {
	assert.Equal(t, "/prediction?prediction=42", PredictionURL(42))
}

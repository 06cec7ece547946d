package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() types.HealthData {
	return types.HealthData{
		Date:                  "2026-10-19",
		Weight:                70,
		CaloriesConsumed:      2100,
		Proteins:              120,
		Carbs:                 230,
		Fats:                  70,
		DietType:              types.DietBalanced,
		DailyMealsFrequency:   3,
		CaloriesBurned:        400,
		Steps:                 8000,
		WaterLitres:           2.5,
		SessionDuration:       1,
		WorkoutType:           types.WorkoutCardio,
		PhysicalExerciseLevel: 2,
	}
}

func TestHealthDataServiceEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health/9", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var rec types.HealthData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		rec.UserID = 9
		_ = json.NewEncoder(w).Encode(rec)
	})
	mux.HandleFunc("/api/health/9/today", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleRecord())
	})
	mux.HandleFunc("/api/health/9/history", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]types.HealthData{sampleRecord(), sampleRecord()})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := service.NewHealthDataService(srv.URL, srv.URL, staticToken("abc"), srv.Client())
	ctx := context.Background()

	saved, err := svc.SaveHealthData(ctx, 9, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, int64(9), saved.UserID)
	assert.Equal(t, float64(400), saved.CaloriesBurned)

	today, err := svc.GetTodayHealthData(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, types.WorkoutCardio, today.WorkoutType)

	history, err := svc.GetHealthDataHistory(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestHealthDataServiceTodayNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := service.NewHealthDataService(srv.URL, srv.URL, nil, srv.Client())
	_, err := svc.GetTodayHealthData(context.Background(), 1)
	assert.True(t, service.IsNotFound(err))
}

func TestHealthDataServicePredictionIsRaw(t *testing.T) {
	bodies := []string{`42`, `"42"`, `{"data":{"prediction":41.7}}`, `not json at all`}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			rec := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/recommendations/4", r.URL.Path)
				assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(body))
			}))
			defer rec.Close()

			svc := service.NewHealthDataService("http://health.invalid", rec.URL, staticToken("abc"), rec.Client())
			raw, err := svc.GetCaloriesBurnedPrediction(context.Background(), 4)
			require.NoError(t, err)
			assert.Equal(t, body, string(raw))
		})
	}
}

func TestHealthDataServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := service.NewHealthDataService(url, url, nil, nil)
	_, err := svc.SaveHealthData(context.Background(), 1, sampleRecord())
	require.Error(t, err)

	var netErr *service.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "health-data-service", netErr.Endpoint.Name)
	assert.Equal(t, service.KindNetwork, service.Classify(err))
}

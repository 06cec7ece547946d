package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/pageza/healthtrack/frontend/internal/types"
)

// Backend fakes the auth, profile, health-data and recommendations services
// on a single httptest server. Login succeeds only with Password.
type Backend struct {
	*httptest.Server

	UserID   int64
	Token    string
	Password string

	mu         sync.Mutex
	profiles   map[int64]types.UserProfile
	today      *types.HealthData
	saved      []types.HealthData
	prediction string
}

// NewBackend starts a fake backend whose token identifies userID
func NewBackend(t *testing.T, userID int64) *Backend {
	t.Helper()
	b := &Backend{
		UserID:     userID,
		Token:      SignedToken(t, userID),
		Password:   "secret1",
		profiles:   map[int64]types.UserProfile{},
		prediction: `{"caloriesBurned": 41.6}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("POST /auth/register", b.login)
	mux.HandleFunc("GET /profiles/{id}", b.getProfile)
	mux.HandleFunc("POST /profiles", b.createProfile)
	mux.HandleFunc("GET /api/health/{id}/today", b.getToday)
	mux.HandleFunc("GET /api/health/{id}/history", b.getHistory)
	mux.HandleFunc("POST /api/health/{id}", b.saveHealth)
	mux.HandleFunc("GET /api/recommendations/{id}", b.recommend)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// SetProfile stores a profile as if it had been created earlier
func (b *Backend) SetProfile(p types.UserProfile) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profiles[p.AuthUserID] = p
}

// Profile returns the stored profile for id
func (b *Backend) Profile(id int64) (types.UserProfile, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[id]
	return p, ok
}

// SetToday sets the record returned by the today endpoint; nil means 404
func (b *Backend) SetToday(r *types.HealthData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.today = r
}

// Saved returns every record posted to the health service, oldest first
func (b *Backend) Saved() []types.HealthData {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.HealthData(nil), b.saved...)
}

// AddRecord appends a record to the history as if it had been saved
func (b *Backend) AddRecord(r types.HealthData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = append(b.saved, r)
}

// SetPrediction sets the raw body served by the recommendations endpoint
func (b *Backend) SetPrediction(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prediction = raw
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Password != b.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: b.Token})
}

func (b *Backend) getProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	p, ok := b.Profile(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

func (b *Backend) createProfile(w http.ResponseWriter, r *http.Request) {
	var p types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, exists := b.Profile(p.AuthUserID); exists {
		http.Error(w, `{"message":"duplicate key value violates unique constraint"}`, http.StatusConflict)
		return
	}
	b.SetProfile(p)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

func (b *Backend) getToday(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	today := b.today
	b.mu.Unlock()
	if today == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(today)
}

func (b *Backend) getHistory(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(b.Saved())
}

func (b *Backend) saveHealth(w http.ResponseWriter, r *http.Request) {
	var rec types.HealthData
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.saved = append(b.saved, rec)
	b.mu.Unlock()
	_ = json.NewEncoder(w).Encode(rec)
}

func (b *Backend) recommend(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	raw := b.prediction
	b.mu.Unlock()
	_, _ = w.Write([]byte(raw))
}

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pageza/healthtrack/frontend/internal/types"
)

// DefaultAuthUserID is sent as authUserId when a new profile carries none
const DefaultAuthUserID int64 = 1

type ProfileService struct {
	client *client
}

func NewProfileService(baseURL string, tokens TokenSource, httpClient *http.Client) *ProfileService {
	return &ProfileService{client: newClient("profile-service", baseURL, tokens, httpClient)}
}

func (s *ProfileService) Endpoint() Endpoint {
	return s.client.endpoint
}

// GetProfile fetches the profile of userID. A missing profile yields an
// error matching ErrNotFound.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*types.UserProfile, error) {
	var profile types.UserProfile
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile creates a profile
func (s *ProfileService) SaveProfile(ctx context.Context, profile types.UserProfile) (*types.UserProfile, error) {
	if profile.AuthUserID == 0 {
		profile.AuthUserID = DefaultAuthUserID
	}
	var saved types.UserProfile
	if err := s.client.do(ctx, http.MethodPost, "/profiles", profile, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateProfile applies a partial update to the profile of userID
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, update types.ProfileUpdate) (*types.UserProfile, error) {
	var saved types.UserProfile
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/profiles/%d", userID), update, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

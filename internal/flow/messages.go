package flow

import (
	"errors"
	"fmt"

	"github.com/pageza/healthtrack/frontend/internal/prediction"
	"github.com/pageza/healthtrack/frontend/internal/service"
)

const (
	MsgGenericRetry     = "Something went wrong. Please try again."
	MsgSessionExpired   = "Your session has expired. Please sign in again."
	MsgForbidden        = "You do not have permission to perform this action."
	MsgNotFound         = "The requested resource was not found."
	MsgServerError      = "A server error occurred. Please try again later."
	MsgThrottled        = "Too many attempts. Please wait a minute and try again."
	MsgInvalidForm      = "Please correct the highlighted fields."
	MsgInvalidLogin     = "Invalid email or password."
	MsgAccountExists    = "An account with this email already exists."
	MsgProfileSaved     = "Profile saved successfully!"
	MsgProfileUpdated   = "Profile updated successfully!"
	MsgHealthDataSaved  = "Health data saved successfully!"
	MsgSaveProfileFail  = "Failed to save the profile. Please try again."
	MsgSaveHealthFail   = "Failed to save health data. Please try again."
	MsgPredictionFail   = "Prediction failed. Please try again."
	MsgLoadHistoryFail  = "Failed to load the health data history. Please try again."
	MsgAuthenticateFail = "Authentication failed. Please try again."
)

// UserMessage turns err into the text shown on a screen. ep names the
// service that was called so unreachable services can be pointed out.
// Unclassified errors never reach the screen; fallback is shown instead.
func UserMessage(err error, ep service.Endpoint, fallback string) string {
	switch service.Classify(err) {
	case service.KindValidation:
		return MsgInvalidForm
	case service.KindNetwork:
		return fmt.Sprintf("Cannot reach %s at %s. Check that it is running on port %s.", ep.Name, ep.BaseURL, ep.Port())
	case service.KindUnauthorized:
		return MsgSessionExpired
	case service.KindForbidden:
		return MsgForbidden
	case service.KindNotFound:
		return MsgNotFound
	case service.KindThrottled:
		return MsgThrottled
	case service.KindServer:
		return MsgServerError
	case service.KindUnparseablePrediction:
		var unparseable *prediction.UnparseableError
		if errors.As(err, &unparseable) {
			return "Unexpected response format from the prediction service, received: " + unparseable.Raw
		}
		return err.Error()
	}

	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, ErrBusy) {
		return MsgBusy
	}
	if fallback == "" {
		return MsgGenericRetry
	}
	return fallback
}

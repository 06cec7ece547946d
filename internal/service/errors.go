package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"syscall"

	"github.com/pageza/healthtrack/frontend/internal/prediction"
)

var (
	// ErrNotFound matches any 404 from a backend service
	ErrNotFound = errors.New("resource not found")
	// ErrConflict matches a 409 or a unique-constraint violation reported by a backend
	ErrConflict = errors.New("resource already exists")
	// ErrValidation marks local form validation failures
	ErrValidation = errors.New("validation failed")
	// ErrEmptyToken is returned when the auth service answers without a token
	ErrEmptyToken = errors.New("auth service returned no token")
)

// Kind is the user-facing category of a failure
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindThrottled
	KindNetwork
	KindServer
	KindUnparseablePrediction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindThrottled:
		return "throttled"
	case KindNetwork:
		return "network_unreachable"
	case KindServer:
		return "server_error"
	case KindUnparseablePrediction:
		return "unparseable_prediction"
	default:
		return "unknown"
	}
}

// constraintViolation matches server messages about unique-constraint failures
var constraintViolation = regexp.MustCompile(`(?i)23505|constraint|duplicate key`)

// APIError is a non-2xx answer from a backend service
type APIError struct {
	Endpoint   Endpoint
	Method     string
	URL        string
	StatusCode int
	Message    string
	Body       []byte
}

func newAPIError(ep Endpoint, method, url string, status int, body []byte) *APIError {
	return &APIError{
		Endpoint:   ep,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Message:    serverMessage(body),
		Body:       body,
	}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %s request failed with status %d", e.Method, e.URL, e.Endpoint.Name, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets callers test with errors.Is(err, ErrNotFound) and errors.Is(err, ErrConflict)
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict || constraintViolation.MatchString(e.Message)
	}
	return false
}

// serverMessage pulls a human readable message out of an error body
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Error, payload.Detail} {
			if m != "" {
				return m
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

// NetworkError is a transport-level failure reaching a backend service
type NetworkError struct {
	Endpoint Endpoint
	Method   string
	URL      string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %s unreachable: %v", e.Method, e.URL, e.Endpoint.Name, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from a backend
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err signals an already existing record
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Classify maps any error into the user-facing taxonomy
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrValidation) {
		return KindValidation
	}
	if errors.Is(err, prediction.ErrUnparseable) {
		return KindUnparseablePrediction
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return KindNotFound
		case apiErr.StatusCode == http.StatusUnauthorized:
			return KindUnauthorized
		case apiErr.StatusCode == http.StatusForbidden:
			return KindForbidden
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return KindThrottled
		case apiErr.Is(ErrConflict):
			return KindConflict
		case apiErr.StatusCode >= 500:
			return KindServer
		default:
			return KindUnknown
		}
	}

	if isNetworkFailure(err) {
		return KindNetwork
	}
	return KindUnknown
}

func isNetworkFailure(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

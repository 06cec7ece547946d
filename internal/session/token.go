package session

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// userIDClaims lists the payload keys that may carry the user id, highest priority first
var userIDClaims = []string{"userId", "sub", "id"}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// UserIDFromToken derives the authenticated user id from the payload segment of a
// JWT-like token. The signature is not verified. Any decode failure, malformed
// payload or missing claim reports ok == false.
func UserIDFromToken(token string) (int64, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return 0, false
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return 0, false
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var claims map[string]any
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return 0, false
	}

	for _, key := range userIDClaims {
		if id, ok := coerceUserID(claims[key]); ok {
			return id, true
		}
	}
	return 0, false
}

// decodeSegment accepts URL-safe and standard base64, padded or not
func decodeSegment(seg string) ([]byte, error) {
	if b, err := segmentParser.DecodeSegment(seg); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(seg)
}

func coerceUserID(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		if id, err := val.Int64(); err == nil {
			return id, id != 0
		}
		f, err := val.Float64()
		if err != nil || f != math.Trunc(f) || f == 0 || math.Abs(f) > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

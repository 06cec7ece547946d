// Package prediction interprets the loosely typed calorie-burn prediction
// returned by the recommendation service.
//
// A response is classified into one of the accepted wire shapes and then run
// through an ordered list of extraction rules; the first rule producing a
// finite number wins.
package prediction

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnparseable is returned when no rule can extract a numeric value
var ErrUnparseable = errors.New("unexpected prediction response format")

// UnparseableError carries the raw response for diagnostics
type UnparseableError struct {
	Raw string
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("%s, received: %s", ErrUnparseable, e.Raw)
}

func (e *UnparseableError) Is(target error) bool {
	return target == ErrUnparseable
}

// Shape is the wire shape of a prediction response
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeNumber
	ShapeString
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeNumber:
		return "number"
	case ShapeString:
		return "string"
	case ShapeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Response is a decoded prediction response
type Response struct {
	Shape Shape
	value gjson.Result
	text  string
}

// Decode classifies a raw response body. Bodies that are not valid JSON are
// treated as plain text.
func Decode(raw []byte) Response {
	body := strings.TrimSpace(string(raw))
	if !gjson.Valid(body) {
		return Response{Shape: ShapeString, text: body}
	}

	v := gjson.Parse(body)
	switch {
	case v.Type == gjson.Number:
		return Response{Shape: ShapeNumber, value: v}
	case v.Type == gjson.String:
		return Response{Shape: ShapeString, value: v, text: v.Str}
	case v.IsObject():
		return Response{Shape: ShapeObject, value: v}
	default:
		return Response{Shape: ShapeUnknown, value: v}
	}
}

type rule struct {
	name    string
	extract func(Response) (float64, bool)
}

// rules run in order until one yields a number
var rules = []rule{
	{"bare number", bareNumber},
	{"numeric string", numericString},
	{"caloriesBurned", namedField("caloriesBurned")},
	{"prediction", namedField("prediction")},
	{"value", namedField("value")},
	{"data", nestedData},
	{"first numeric property", firstNumericProperty},
}

// Extract runs the rules against r and reports which one matched
func Extract(r Response) (value float64, ruleName string, ok bool) {
	for _, rl := range rules {
		if v, ok := rl.extract(r); ok {
			return v, rl.name, true
		}
	}
	return 0, "", false
}

// Parse extracts the predicted calories from a raw response body
func Parse(raw []byte) (float64, error) {
	v, _, ok := Extract(Decode(raw))
	if !ok {
		return 0, &UnparseableError{Raw: string(raw)}
	}
	return v, nil
}

// ParseRounded extracts the predicted calories rounded to the nearest integer
func ParseRounded(raw []byte) (int, error) {
	v, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	return Round(v), nil
}

// Round rounds half-way values towards positive infinity
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func bareNumber(r Response) (float64, bool) {
	if r.Shape != ShapeNumber {
		return 0, false
	}
	return finite(r.value.Num)
}

func numericString(r Response) (float64, bool) {
	if r.Shape != ShapeString {
		return 0, false
	}
	return parseLeadingFloat(r.text)
}

func namedField(key string) func(Response) (float64, bool) {
	return func(r Response) (float64, bool) {
		if r.Shape != ShapeObject {
			return 0, false
		}
		return coerce(r.value.Get(key))
	}
}

// nestedData accepts {data: n}, {data: "n"} and {data: {caloriesBurned|prediction|value: n}}
func nestedData(r Response) (float64, bool) {
	if r.Shape != ShapeObject {
		return 0, false
	}
	data := r.value.Get("data")
	if v, ok := coerce(data); ok {
		return v, true
	}
	if !data.IsObject() {
		return 0, false
	}
	for _, key := range []string{"caloriesBurned", "prediction", "value"} {
		if v, ok := coerce(data.Get(key)); ok {
			return v, true
		}
	}
	return 0, false
}

// firstNumericProperty scans top-level properties in document order
func firstNumericProperty(r Response) (float64, bool) {
	if r.Shape != ShapeObject {
		return 0, false
	}
	var (
		found float64
		ok    bool
	)
	r.value.ForEach(func(_, v gjson.Result) bool {
		found, ok = coerce(v)
		return !ok
	})
	return found, ok
}

func coerce(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return finite(v.Num)
	case gjson.String:
		return parseLeadingFloat(v.Str)
	default:
		return 0, false
	}
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat parses the numeric prefix of s, ignoring trailing text such as units
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

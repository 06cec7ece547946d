package flow

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
)

// FieldErrors maps a form field name to the message shown next to it
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Is(target error) bool {
	return target == service.ErrValidation
}

func (e FieldErrors) merge(other FieldErrors) FieldErrors {
	if len(other) == 0 {
		return e
	}
	if e == nil {
		e = FieldErrors{}
	}
	for k, v := range other {
		if _, ok := e[k]; !ok {
			e[k] = v
		}
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	fields := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		if reflect.Indirect(reflect.ValueOf(fe.Value())).Kind() == reflect.String {
			return fmt.Sprintf("Minimum %s characters", fe.Param())
		}
		return "Minimum value is " + fe.Param()
	case "gte":
		return "Minimum value is " + fe.Param()
	case "max", "lte":
		return "Maximum value is " + fe.Param()
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "Use the YYYY-MM-DD format"
	case "url":
		return "Enter a valid URL"
	}
	return "Invalid value"
}

// numbers collects numeric fields parsed from form input. Empty input
// stays nil so required rules can report it.
type numbers struct {
	errs FieldErrors
}

func (n *numbers) parseFloat(field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		n.fail(field)
		return nil
	}
	return &v
}

func (n *numbers) parseInt(field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != float64(int(f)) {
			n.fail(field)
			return nil
		}
		v = int(f)
	}
	return &v
}

func (n *numbers) fail(field string) {
	if n.errs == nil {
		n.errs = FieldErrors{}
	}
	n.errs[field] = "Enter a number"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// AuthMode selects between signing in and creating an account
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// ParseAuthMode defaults to ModeLogin for anything but "register"
func ParseAuthMode(s string) AuthMode {
	if AuthMode(strings.ToLower(strings.TrimSpace(s))) == ModeRegister {
		return ModeRegister
	}
	return ModeLogin
}

// Toggle returns the other mode
func (m AuthMode) Toggle() AuthMode {
	if m == ModeRegister {
		return ModeLogin
	}
	return ModeRegister
}

type AuthForm struct {
	Name     string `form:"name"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// Validate checks the credentials. Name is only required when registering.
func (f AuthForm) Validate(mode AuthMode) FieldErrors {
	f.Email = strings.TrimSpace(f.Email)
	errs := validateStruct(f)
	if mode == ModeRegister {
		if err := validate.Var(strings.TrimSpace(f.Name), "required,min=2"); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				errs = errs.merge(FieldErrors{"name": fieldMessage(verrs[0])})
			}
		}
	}
	return errs
}

// ProfileForm is the profile screen as submitted
type ProfileForm struct {
	FirstName     string `form:"firstName"`
	LastName      string `form:"lastName"`
	Age           string `form:"age"`
	Gender        string `form:"gender"`
	Height        string `form:"height"`
	Weight        string `form:"weight"`
	ActivityLevel string `form:"activityLevel"`
	Goal          string `form:"goal"`
	Country       string `form:"country"`
	City          string `form:"city"`
	AvatarURL     string `form:"avatarUrl"`
}

type profileInput struct {
	FirstName     string              `form:"firstName" validate:"required,min=2"`
	LastName      string              `form:"lastName" validate:"required,min=2"`
	Age           *int                `form:"age" validate:"required,gte=1,lte=150"`
	Gender        types.Gender        `form:"gender" validate:"required,oneof=MALE FEMALE"`
	Height        *float64            `form:"height" validate:"required,gte=50,lte=300"`
	Weight        *float64            `form:"weight" validate:"required,gte=20,lte=500"`
	ActivityLevel types.ActivityLevel `form:"activityLevel" validate:"required,oneof=SEDENTARY LIGHTLY_ACTIVE MODERATELY_ACTIVE VERY_ACTIVE EXTRA_ACTIVE"`
	Goal          types.Goal          `form:"goal" validate:"required,oneof=LOSE_WEIGHT MAINTAIN GAIN_MUSCLE"`
	Country       string              `form:"country" validate:"required,min=2"`
	City          string              `form:"city" validate:"required,min=2"`
	AvatarURL     string              `form:"avatarUrl" validate:"omitempty,url"`
}

// Profile validates the form and builds the profile it describes
func (f ProfileForm) Profile() (types.UserProfile, FieldErrors) {
	var n numbers
	in := profileInput{
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		Age:           n.parseInt("age", f.Age),
		Gender:        types.Gender(strings.TrimSpace(f.Gender)),
		Height:        n.parseFloat("height", f.Height),
		Weight:        n.parseFloat("weight", f.Weight),
		ActivityLevel: types.ActivityLevel(strings.TrimSpace(f.ActivityLevel)),
		Goal:          types.Goal(strings.TrimSpace(f.Goal)),
		Country:       strings.TrimSpace(f.Country),
		City:          strings.TrimSpace(f.City),
		AvatarURL:     strings.TrimSpace(f.AvatarURL),
	}
	if errs := n.errs.merge(validateStruct(in)); len(errs) > 0 {
		return types.UserProfile{}, errs
	}
	return types.UserProfile{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Age:           *in.Age,
		Gender:        in.Gender,
		Height:        *in.Height,
		Weight:        *in.Weight,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
		Country:       in.Country,
		City:          in.City,
		AvatarURL:     in.AvatarURL,
	}, nil
}

// HealthDataForm is the daily health-data screen as submitted
type HealthDataForm struct {
	Date                  string `form:"date"`
	Weight                string `form:"weight"`
	CaloriesConsumed      string `form:"caloriesConsumed"`
	Proteins              string `form:"proteins"`
	Carbs                 string `form:"carbs"`
	Fats                  string `form:"fats"`
	DietType              string `form:"dietType"`
	DailyMealsFrequency   string `form:"dailyMealsFrequency"`
	CaloriesBurned        string `form:"caloriesBurned"`
	Steps                 string `form:"steps"`
	WaterLitres           string `form:"waterLitres"`
	SessionDuration       string `form:"sessionDuration"`
	WorkoutType           string `form:"workoutType"`
	PhysicalExerciseLevel string `form:"physicalExerciseLevel"`
}

type healthInput struct {
	Date                  string            `form:"date" validate:"required,datetime=2006-01-02"`
	Weight                *float64          `form:"weight" validate:"required,gte=20,lte=500"`
	CaloriesConsumed      *float64          `form:"caloriesConsumed" validate:"required,gte=0"`
	Proteins              *float64          `form:"proteins" validate:"required,gte=0"`
	Carbs                 *float64          `form:"carbs" validate:"required,gte=0"`
	Fats                  *float64          `form:"fats" validate:"required,gte=0"`
	DietType              types.DietType    `form:"dietType" validate:"required,oneof=Vegan Vegetarian Paleo Keto Low-Carb Balanced"`
	DailyMealsFrequency   *int              `form:"dailyMealsFrequency" validate:"required,gte=1,lte=10"`
	CaloriesBurned        *float64          `form:"caloriesBurned" validate:"required,gte=0"`
	Steps                 *int              `form:"steps" validate:"required,gte=0"`
	WaterLitres           *float64          `form:"waterLitres" validate:"required,gte=0,lte=20"`
	SessionDuration       *float64          `form:"sessionDuration" validate:"required,gte=0,lte=24"`
	WorkoutType           types.WorkoutType `form:"workoutType" validate:"required,oneof=Strength HIIT Cardio Yoga"`
	PhysicalExerciseLevel *int              `form:"physicalExerciseLevel" validate:"required,oneof=1 2 3"`
}

// NewHealthDataForm returns an empty form dated on the given day
func NewHealthDataForm(day time.Time) HealthDataForm {
	return HealthDataForm{Date: day.Format(types.DateLayout)}
}

// ApplyProfile prefills the weight from the user's profile
func (f *HealthDataForm) ApplyProfile(p *types.UserProfile) {
	if p != nil && p.Weight > 0 {
		f.Weight = formatFloat(p.Weight)
	}
}

// ApplyRecord prefills every field from an existing record, keeping the
// form's date when the record has none.
func (f *HealthDataForm) ApplyRecord(r *types.HealthData) {
	if r == nil {
		return
	}
	date := f.Date
	if r.Date != "" {
		date = r.Date
	}
	*f = HealthDataForm{
		Date:                  date,
		Weight:                formatFloat(r.Weight),
		CaloriesConsumed:      formatFloat(r.CaloriesConsumed),
		Proteins:              formatFloat(r.Proteins),
		Carbs:                 formatFloat(r.Carbs),
		Fats:                  formatFloat(r.Fats),
		DietType:              string(r.DietType),
		DailyMealsFrequency:   strconv.Itoa(r.DailyMealsFrequency),
		CaloriesBurned:        formatFloat(r.CaloriesBurned),
		Steps:                 strconv.Itoa(r.Steps),
		WaterLitres:           formatFloat(r.WaterLitres),
		SessionDuration:       formatFloat(r.SessionDuration),
		WorkoutType:           string(r.WorkoutType),
		PhysicalExerciseLevel: strconv.Itoa(r.PhysicalExerciseLevel),
	}
}

// Record validates the form and builds the record it describes
func (f HealthDataForm) Record() (types.HealthData, FieldErrors) {
	var n numbers
	in := healthInput{
		Date:                  strings.TrimSpace(f.Date),
		Weight:                n.parseFloat("weight", f.Weight),
		CaloriesConsumed:      n.parseFloat("caloriesConsumed", f.CaloriesConsumed),
		Proteins:              n.parseFloat("proteins", f.Proteins),
		Carbs:                 n.parseFloat("carbs", f.Carbs),
		Fats:                  n.parseFloat("fats", f.Fats),
		DietType:              types.DietType(strings.TrimSpace(f.DietType)),
		DailyMealsFrequency:   n.parseInt("dailyMealsFrequency", f.DailyMealsFrequency),
		CaloriesBurned:        n.parseFloat("caloriesBurned", f.CaloriesBurned),
		Steps:                 n.parseInt("steps", f.Steps),
		WaterLitres:           n.parseFloat("waterLitres", f.WaterLitres),
		SessionDuration:       n.parseFloat("sessionDuration", f.SessionDuration),
		WorkoutType:           types.WorkoutType(strings.TrimSpace(f.WorkoutType)),
		PhysicalExerciseLevel: n.parseInt("physicalExerciseLevel", f.PhysicalExerciseLevel),
	}
	if errs := n.errs.merge(validateStruct(in)); len(errs) > 0 {
		return types.HealthData{}, errs
	}
	return types.HealthData{
		Date:                  in.Date,
		Weight:                deref(in.Weight),
		CaloriesConsumed:      deref(in.CaloriesConsumed),
		Proteins:              deref(in.Proteins),
		Carbs:                 deref(in.Carbs),
		Fats:                  deref(in.Fats),
		DietType:              in.DietType,
		DailyMealsFrequency:   deref(in.DailyMealsFrequency),
		CaloriesBurned:        deref(in.CaloriesBurned),
		Steps:                 deref(in.Steps),
		WaterLitres:           deref(in.WaterLitres),
		SessionDuration:       deref(in.SessionDuration),
		WorkoutType:           in.WorkoutType,
		PhysicalExerciseLevel: deref(in.PhysicalExerciseLevel),
	}, nil
}

package flow

import (
	"testing"
	"time"

	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfileForm() ProfileForm {
	return ProfileForm{
		FirstName:     "Jane",
		LastName:      "Doe",
		Age:           "31",
		Gender:        "FEMALE",
		Height:        "168",
		Weight:        "61.5",
		ActivityLevel: "MODERATELY_ACTIVE",
		Goal:          "MAINTAIN",
		Country:       "Portugal",
		City:          "Lisbon",
	}
}

func validHealthForm() HealthDataForm {
	return HealthDataForm{
		Date:                  "2026-10-19",
		Weight:                "70",
		CaloriesConsumed:      "2100",
		Proteins:              "120",
		Carbs:                 "230",
		Fats:                  "70",
		DietType:              "Balanced",
		DailyMealsFrequency:   "3",
		CaloriesBurned:        "350",
		Steps:                 "8000",
		WaterLitres:           "2.5",
		SessionDuration:       "1",
		WorkoutType:           "Cardio",
		PhysicalExerciseLevel: "2",
	}
}

func TestAuthFormValidate(t *testing.T) {
	tests := []struct {
		name string
		mode AuthMode
		form AuthForm
		want FieldErrors
	}{
		{
			name: "valid login",
			mode: ModeLogin,
			form: AuthForm{Email: "jane@example.com", Password: "secret1"},
		},
		{
			name: "login ignores name",
			mode: ModeLogin,
			form: AuthForm{Name: "J", Email: "jane@example.com", Password: "secret1"},
		},
		{
			name: "missing fields",
			mode: ModeLogin,
			want: FieldErrors{"email": "This field is required", "password": "This field is required"},
		},
		{
			name: "bad email and short password",
			mode: ModeLogin,
			form: AuthForm{Email: "jane", Password: "123"},
			want: FieldErrors{"email": "Enter a valid email address", "password": "Minimum 6 characters"},
		},
		{
			name: "register requires name",
			mode: ModeRegister,
			form: AuthForm{Email: "jane@example.com", Password: "secret1"},
			want: FieldErrors{"name": "This field is required"},
		},
		{
			name: "register short name",
			mode: ModeRegister,
			form: AuthForm{Name: "J", Email: "jane@example.com", Password: "secret1"},
			want: FieldErrors{"name": "Minimum 2 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate(tt.mode)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAuthMode(t *testing.T) {
	assert.Equal(t, ModeRegister, ParseAuthMode(" Register "))
	assert.Equal(t, ModeLogin, ParseAuthMode(""))
	assert.Equal(t, ModeLogin, ParseAuthMode("other"))
	assert.Equal(t, ModeLogin, ModeRegister.Toggle())
	assert.Equal(t, ModeRegister, ModeLogin.Toggle())
}

func TestProfileFormProfile(t *testing.T) {
	profile, errs := validProfileForm().Profile()
	require.Empty(t, errs)
	assert.Equal(t, 31, profile.Age)
	assert.Equal(t, 61.5, profile.Weight)
	assert.Equal(t, types.GenderFemale, profile.Gender)
	assert.Equal(t, types.ActivityModeratelyActive, profile.ActivityLevel)
}

func TestProfileFormErrors(t *testing.T) {
	form := validProfileForm()
	form.FirstName = "J"
	form.Age = "200"
	form.Height = "tall"
	form.Weight = ""
	form.Gender = "OTHER"
	form.AvatarURL = "not a url"

	_, errs := form.Profile()
	assert.Equal(t, "Minimum 2 characters", errs["firstName"])
	assert.Equal(t, "Maximum value is 150", errs["age"])
	assert.Equal(t, "Enter a number", errs["height"])
	assert.Equal(t, "This field is required", errs["weight"])
	assert.Equal(t, "Choose one of: MALE, FEMALE", errs["gender"])
	assert.Equal(t, "Enter a valid URL", errs["avatarUrl"])
	assert.NotContains(t, errs, "city")
	assert.ErrorIs(t, errs, service.ErrValidation)
}

func TestHealthDataFormRecord(t *testing.T) {
	record, errs := validHealthForm().Record()
	require.Empty(t, errs)
	assert.Equal(t, "2026-10-19", record.Date)
	assert.Equal(t, float64(350), record.CaloriesBurned)
	assert.Equal(t, 8000, record.Steps)
	assert.Equal(t, 2, record.PhysicalExerciseLevel)
	assert.Equal(t, types.DietBalanced, record.DietType)
}

func TestHealthDataFormErrors(t *testing.T) {
	form := validHealthForm()
	form.Date = "19/10/2026"
	form.Weight = "10"
	form.DailyMealsFrequency = "11"
	form.WaterLitres = "-1"
	form.PhysicalExerciseLevel = "4"
	form.DietType = "Carnivore"
	form.Steps = "many"
	form.CaloriesBurned = ""

	_, errs := form.Record()
	assert.Equal(t, "Use the YYYY-MM-DD format", errs["date"])
	assert.Equal(t, "Minimum value is 20", errs["weight"])
	assert.Equal(t, "Maximum value is 10", errs["dailyMealsFrequency"])
	assert.Equal(t, "Minimum value is 0", errs["waterLitres"])
	assert.Equal(t, "Choose one of: 1, 2, 3", errs["physicalExerciseLevel"])
	assert.Contains(t, errs["dietType"], "Choose one of")
	assert.Equal(t, "Enter a number", errs["steps"])
	assert.Equal(t, "This field is required", errs["caloriesBurned"])
	assert.NotContains(t, errs, "proteins")
}

func TestHealthDataFormRejectsNonFiniteNumbers(t *testing.T) {
	for _, raw := range []string{"Inf", "+Inf", "-inf", "NaN", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			form := validHealthForm()
			form.CaloriesConsumed = raw
			form.Steps = raw

			_, errs := form.Record()
			assert.Equal(t, "Enter a number", errs["caloriesConsumed"])
			assert.Equal(t, "Enter a number", errs["steps"])
		})
	}
}

func TestHealthDataFormPrefill(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	form := NewHealthDataForm(day)
	form.ApplyProfile(&types.UserProfile{Weight: 64.2})
	assert.Equal(t, "2026-10-19", form.Date)
	assert.Equal(t, "64.2", form.Weight)

	form.ApplyRecord(&types.HealthData{Weight: 63, Steps: 1200, WorkoutType: types.WorkoutYoga, PhysicalExerciseLevel: 1})
	assert.Equal(t, "2026-10-19", form.Date)
	assert.Equal(t, "63", form.Weight)
	assert.Equal(t, "1200", form.Steps)
	assert.Equal(t, "Yoga", form.WorkoutType)

	form.ApplyRecord(&types.HealthData{Date: "2026-10-18", Weight: 62})
	assert.Equal(t, "2026-10-18", form.Date)

	form.ApplyProfile(nil)
	form.ApplyRecord(nil)
	assert.Equal(t, "62", form.Weight)
}

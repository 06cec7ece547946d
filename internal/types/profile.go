package types

// Gender of a user profile
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ActivityLevel describes how active the user usually is
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtraActive      ActivityLevel = "EXTRA_ACTIVE"
)

// Goal is the user's body composition objective
type Goal string

const (
	GoalLoseWeight Goal = "LOSE_WEIGHT"
	GoalMaintain   Goal = "MAINTAIN"
	GoalGainMuscle Goal = "GAIN_MUSCLE"
)

// UserProfile represents the profile record held by the profile service
type UserProfile struct {
	AuthUserID    int64         `json:"authUserId,omitempty"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	Height        float64       `json:"height"`
	Weight        float64       `json:"weight"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
	Country       string        `json:"country"`
	City          string        `json:"city"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
}

// ProfileUpdate is a partial profile sent with PUT /profiles/{id}.
// Nil fields are left untouched by the profile service.
type ProfileUpdate struct {
	AuthUserID    *int64         `json:"authUserId,omitempty"`
	FirstName     *string        `json:"firstName,omitempty"`
	LastName      *string        `json:"lastName,omitempty"`
	Age           *int           `json:"age,omitempty"`
	Gender        *Gender        `json:"gender,omitempty"`
	Height        *float64       `json:"height,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	ActivityLevel *ActivityLevel `json:"activityLevel,omitempty"`
	Goal          *Goal          `json:"goal,omitempty"`
	Country       *string        `json:"country,omitempty"`
	City          *string        `json:"city,omitempty"`
	AvatarURL     *string        `json:"avatarUrl,omitempty"`
}

// AsUpdate returns an update carrying every field of the profile
func (p UserProfile) AsUpdate() ProfileUpdate {
	u := ProfileUpdate{
		FirstName:     &p.FirstName,
		LastName:      &p.LastName,
		Age:           &p.Age,
		Gender:        &p.Gender,
		Height:        &p.Height,
		Weight:        &p.Weight,
		ActivityLevel: &p.ActivityLevel,
		Goal:          &p.Goal,
		Country:       &p.Country,
		City:          &p.City,
	}
	if p.AuthUserID != 0 {
		u.AuthUserID = &p.AuthUserID
	}
	if p.AvatarURL != "" {
		u.AvatarURL = &p.AvatarURL
	}
	return u
}

// Option is a selectable value shown on a form
type Option struct {
	Value       string
	Label       string
	Description string
}

var GenderOptions = []Option{
	{Value: string(GenderMale), Label: "Male"},
	{Value: string(GenderFemale), Label: "Female"},
}

var ActivityLevelOptions = []Option{
	{Value: string(ActivitySedentary), Label: "Sedentary", Description: "Little or no exercise"},
	{Value: string(ActivityLightlyActive), Label: "Lightly active", Description: "Light exercise 1-3 days/week"},
	{Value: string(ActivityModeratelyActive), Label: "Moderately active", Description: "Moderate exercise 3-5 days/week"},
	{Value: string(ActivityVeryActive), Label: "Very active", Description: "Hard exercise 6-7 days/week"},
	{Value: string(ActivityExtraActive), Label: "Extra active", Description: "Very hard exercise or physical job"},
}

var GoalOptions = []Option{
	{Value: string(GoalLoseWeight), Label: "Lose weight"},
	{Value: string(GoalMaintain), Label: "Maintain weight"},
	{Value: string(GoalGainMuscle), Label: "Gain muscle"},
}

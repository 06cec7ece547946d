package types

// DietType followed on a given day
type DietType string

const (
	DietVegan      DietType = "Vegan"
	DietVegetarian DietType = "Vegetarian"
	DietPaleo      DietType = "Paleo"
	DietKeto       DietType = "Keto"
	DietLowCarb    DietType = "Low-Carb"
	DietBalanced   DietType = "Balanced"
)

// WorkoutType of the day's training session
type WorkoutType string

const (
	WorkoutStrength WorkoutType = "Strength"
	WorkoutHIIT     WorkoutType = "HIIT"
	WorkoutCardio   WorkoutType = "Cardio"
	WorkoutYoga     WorkoutType = "Yoga"
)

// DateLayout is the wire format of HealthData.Date
const DateLayout = "2006-01-02"

// HealthData is one calendar day's nutrition and activity entry
type HealthData struct {
	UserID                int64       `json:"userId,omitempty"`
	Date                  string      `json:"date,omitempty"`
	Weight                float64     `json:"weight"`
	CaloriesConsumed      float64     `json:"caloriesConsumed"`
	Proteins              float64     `json:"proteins"`
	Carbs                 float64     `json:"carbs"`
	Fats                  float64     `json:"fats"`
	DietType              DietType    `json:"dietType"`
	DailyMealsFrequency   int         `json:"dailyMealsFrequency"`
	CaloriesBurned        float64     `json:"caloriesBurned"`
	Steps                 int         `json:"steps"`
	WaterLitres           float64     `json:"waterLitres"`
	SessionDuration       float64     `json:"sessionDuration"`
	WorkoutType           WorkoutType `json:"workoutType"`
	PhysicalExerciseLevel int         `json:"physicalExerciseLevel"`
}

var DietTypeOptions = []Option{
	{Value: string(DietVegan), Label: "Vegan"},
	{Value: string(DietVegetarian), Label: "Vegetarian"},
	{Value: string(DietPaleo), Label: "Paleo"},
	{Value: string(DietKeto), Label: "Keto"},
	{Value: string(DietLowCarb), Label: "Low-Carb"},
	{Value: string(DietBalanced), Label: "Balanced"},
}

var WorkoutTypeOptions = []Option{
	{Value: string(WorkoutStrength), Label: "Strength"},
	{Value: string(WorkoutHIIT), Label: "HIIT"},
	{Value: string(WorkoutCardio), Label: "Cardio"},
	{Value: string(WorkoutYoga), Label: "Yoga"},
}

var ExerciseLevelOptions = []Option{
	{Value: "1", Label: "Light", Description: "Light exercise"},
	{Value: "2", Label: "Moderate", Description: "Moderate exercise"},
	{Value: "3", Label: "Intense", Description: "Intense exercise"},
}

package models

import "slices"

// Profile holds a user's intake-survey answers and challenge progress.
type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`

	// Daily routine
	WakeTime  string `json:"wake_time,omitempty"`  // early | morning | late
	SleepTime string `json:"sleep_time,omitempty"` // early | normal | late

	// Eating habits
	DietType               string   `json:"diet_type,omitempty"` // vegetarian | non-vegetarian | vegan | eggetarian
	MealsPerDay            int      `json:"meals_per_day,omitempty"`
	Allergies              []string `json:"allergies,omitempty"`
	ProcessedFoodFrequency string   `json:"processed_food_frequency,omitempty"` // rarely | sometimes | often

	// Sleep & health
	SleepDuration    string   `json:"sleep_duration,omitempty"`
	SleepQuality     string   `json:"sleep_quality,omitempty"` // good | average | poor
	HealthConditions []string `json:"health_conditions,omitempty"`

	// Fitness
	FitnessGoals []string `json:"fitness_goals,omitempty"`

	// Mental wellness
	RelaxationMethods []string `json:"relaxation_methods,omitempty"`
	StressFrequency   string   `json:"stress_frequency,omitempty"` // rarely | sometimes | often

	// Eco-friendly living
	EcoHabits        []string `json:"eco_habits,omitempty"`
	EcoInterestLevel string   `json:"eco_interest_level,omitempty"` // low | medium | high

	// Progress
	CurrentDay          int    `json:"current_day"` // 0 means unset
	TotalPoints         int    `json:"total_points"`
	ChallengeStartDate  string `json:"challenge_start_date,omitempty"` // YYYY-MM-DD format
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// EffectiveDay returns the current program day. An unset day reads as day 1.
func (p Profile) EffectiveDay() int {
	if p.CurrentDay == 0 {
		return 1
	}
	return p.CurrentDay
}

func (p Profile) HasHealthCondition(c string) bool { return slices.Contains(p.HealthConditions, c) }
func (p Profile) HasFitnessGoal(g string) bool     { return slices.Contains(p.FitnessGoals, g) }

// ProfilePatch carries the only profile fields the engine is allowed to write.
type ProfilePatch struct {
	CurrentDay  *int `json:"current_day,omitempty"`
	TotalPoints *int `json:"total_points,omitempty"`
}

package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/wellpath/internal/models"
)

type choice struct {
	emoji string
	label string
	value string
}

var (
	wakeTimeChoices = []choice{
		{"🌅", "Early Morning (4-6 AM)", "early"},
		{"☀️", "Morning (6-8 AM)", "morning"},
		{"🌤️", "Late Morning (After 8 AM)", "late"},
	}
	sleepTimeChoices = []choice{
		{"🌙", "Before 10 PM", "early"},
		{"🌌", "10 PM - Midnight", "normal"},
		{"🌃", "After Midnight", "late"},
	}
	dietChoices = []choice{
		{"🥗", "Vegetarian", "vegetarian"},
		{"🍗", "Non-Vegetarian", "non-vegetarian"},
		{"🥬", "Vegan", "vegan"},
		{"🍳", "Eggetarian", "eggetarian"},
	}
	mealsChoices = []choice{
		{"🍽️", "2", "2"},
		{"🍽️", "3", "3"},
		{"🍽️", "4+", "4+"},
	}
	allergyChoices = []choice{
		{"🥜", "Nuts", "nuts"},
		{"🥛", "Dairy", "dairy"},
		{"🌾", "Gluten", "gluten"},
		{"🦐", "Shellfish", "shellfish"},
		{"🥚", "Eggs", "eggs"},
		{"🍓", "Fruits", "fruits"},
		{"✅", "No known allergies", "none"},
	}
	processedFoodChoices = []choice{
		{"🥗", "Rarely (Mostly fresh foods)", "rarely"},
		{"📦", "Sometimes (Occasional packaged items)", "sometimes"},
		{"🍕", "Often (Regular processed meals)", "often"},
		{"🥤", "Very Often (Mostly packaged/fast food)", "very-often"},
	}
	sleepDurationChoices = []choice{
		{"😪", "Less than 5 hours", "under-5"},
		{"😴", "5-6 hours", "5-6"},
		{"😊", "7-8 hours", "7-8"},
		{"😌", "More than 8 hours", "over-8"},
	}
	sleepQualityChoices = []choice{
		{"😴", "Excellent (7-8 hrs, refreshing)", "excellent"},
		{"🙂", "Average (5-6 hrs, sometimes restless)", "average"},
		{"😟", "Poor (less than 5 hrs, disturbed)", "poor"},
	}
	healthConditionChoices = []choice{
		{"🩺", "No major issues", "none"},
		{"⚡", "Low energy / fatigue", "fatigue"},
		{"⚖️", "Weight management", "weight"},
		{"🤕", "Digestive issues", "digestive"},
		{"💆", "Stress / anxiety", "stress"},
		{"🦴", "Joint/Back pain", "joint-pain"},
		{"🫁", "Respiratory issues", "respiratory"},
	}
	fitnessGoalChoices = []choice{
		{"🏋️", "Build Strength", "strength"},
		{"🧘", "Improve Flexibility & Balance", "flexibility"},
		{"💪", "Weight Loss", "weight-loss"},
		{"🍎", "Eat Healthier", "nutrition"},
		{"🧠", "Improve Mental Health", "mental"},
		{"🌍", "Live More Eco-Friendly", "eco"},
	}
	relaxationChoices = []choice{
		{"🎵", "Music", "music"},
		{"📚", "Reading", "reading"},
		{"🧘", "Yoga / Meditation", "yoga"},
		{"🎮", "Entertainment (games, movies)", "entertainment"},
		{"🚶", "Outdoor Walks", "walks"},
	}
	stressChoices = []choice{
		{"😌", "Rarely", "rarely"},
		{"🙂", "Sometimes", "sometimes"},
		{"😟", "Often", "often"},
	}
	ecoHabitChoices = []choice{
		{"♻️", "Recycling waste", "recycling"},
		{"🌱", "Using eco-friendly products", "eco-products"},
		{"🚲", "Walking / cycling / public transport", "transport"},
		{"🌍", "Conscious shopping (organic, sustainable)", "shopping"},
		{"🚫", "None yet (want to start)", "none"},
	}
	ecoInterestChoices = []choice{
		{"🌱", "Very Interested", "high"},
		{"🤔", "Somewhat Interested", "medium"},
		{"😐", "Slightly Interested", "low"},
		{"🤷", "Not Sure", "unsure"},
	}
)

func options(choices []choice) []huh.Option[string] {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.emoji+" "+c.label, c.value)
	}
	return opts
}

func validChoice(choices []choice, value string) bool {
	return slices.ContainsFunc(choices, func(c choice) bool { return c.value == value })
}

// SurveyAnswers holds the intake survey, either answered interactively or
// read from a YAML file.
type SurveyAnswers struct {
	DisplayName string `yaml:"display_name"`

	WakeTime  string `yaml:"wake_time"`
	SleepTime string `yaml:"sleep_time"`

	DietType               string   `yaml:"diet_type"`
	MealsPerDay            string   `yaml:"meals_per_day"`
	Allergies              []string `yaml:"allergies"`
	ProcessedFoodFrequency string   `yaml:"processed_food_frequency"`

	SleepDuration    string   `yaml:"sleep_duration"`
	SleepQuality     string   `yaml:"sleep_quality"`
	HealthConditions []string `yaml:"health_conditions"`

	FitnessGoals []string `yaml:"fitness_goals"`

	RelaxationMethods []string `yaml:"relaxation_methods"`
	StressFrequency   string   `yaml:"stress_frequency"`

	EcoHabits        []string `yaml:"eco_habits"`
	EcoInterestLevel string   `yaml:"eco_interest_level"`
}

// LoadSurvey reads answers from a YAML file.
func LoadSurvey(path string) (SurveyAnswers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SurveyAnswers{}, fmt.Errorf("failed to read survey file: %w", err)
	}
	var a SurveyAnswers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return SurveyAnswers{}, fmt.Errorf("failed to parse survey file: %w", err)
	}
	return a, nil
}

// Validate rejects answers outside the survey's options. Unanswered
// questions are allowed.
func (a SurveyAnswers) Validate() error {
	single := []struct {
		field   string
		value   string
		choices []choice
	}{
		{"wake_time", a.WakeTime, wakeTimeChoices},
		{"sleep_time", a.SleepTime, sleepTimeChoices},
		{"diet_type", a.DietType, dietChoices},
		{"meals_per_day", a.MealsPerDay, mealsChoices},
		{"processed_food_frequency", a.ProcessedFoodFrequency, processedFoodChoices},
		{"sleep_duration", a.SleepDuration, sleepDurationChoices},
		{"sleep_quality", a.SleepQuality, sleepQualityChoices},
		{"stress_frequency", a.StressFrequency, stressChoices},
		{"eco_interest_level", a.EcoInterestLevel, ecoInterestChoices},
	}
	for _, q := range single {
		if q.value != "" && !validChoice(q.choices, q.value) {
			return fmt.Errorf("invalid %s %q", q.field, q.value)
		}
	}

	multi := []struct {
		field   string
		values  []string
		choices []choice
	}{
		{"allergies", a.Allergies, allergyChoices},
		{"health_conditions", a.HealthConditions, healthConditionChoices},
		{"fitness_goals", a.FitnessGoals, fitnessGoalChoices},
		{"relaxation_methods", a.RelaxationMethods, relaxationChoices},
		{"eco_habits", a.EcoHabits, ecoHabitChoices},
	}
	for _, q := range multi {
		for _, v := range q.values {
			if !validChoice(q.choices, v) {
				return fmt.Errorf("invalid %s %q", q.field, v)
			}
		}
	}
	return nil
}

// withoutNone drops the "none" marker from a multi-select answer.
func withoutNone(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "none" {
			out = append(out, v)
		}
	}
	return out
}

func mealsPerDay(s string) int {
	switch s {
	case "2":
		return 2
	case "3":
		return 3
	case "4+":
		return 4
	}
	return 0
}

// Apply copies the answers onto p. Progress fields are left alone.
func (a SurveyAnswers) Apply(p models.Profile) models.Profile {
	if name := strings.TrimSpace(a.DisplayName); name != "" {
		p.DisplayName = name
	}
	p.WakeTime = a.WakeTime
	p.SleepTime = a.SleepTime
	p.DietType = a.DietType
	p.MealsPerDay = mealsPerDay(a.MealsPerDay)
	p.Allergies = withoutNone(a.Allergies)
	p.ProcessedFoodFrequency = a.ProcessedFoodFrequency
	p.SleepDuration = a.SleepDuration
	p.SleepQuality = a.SleepQuality
	p.HealthConditions = withoutNone(a.HealthConditions)
	p.FitnessGoals = a.FitnessGoals
	p.RelaxationMethods = a.RelaxationMethods
	p.StressFrequency = a.StressFrequency
	p.EcoHabits = withoutNone(a.EcoHabits)
	p.EcoInterestLevel = a.EcoInterestLevel
	return p
}

// NewSurveyForm builds the interactive intake survey bound to a.
func NewSurveyForm(a *SurveyAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&a.DisplayName),
			huh.NewSelect[string]().
				Title("When do you usually wake up?").
				Options(options(wakeTimeChoices)...).
				Value(&a.WakeTime),
			huh.NewSelect[string]().
				Title("When do you usually go to sleep?").
				Options(options(sleepTimeChoices)...).
				Value(&a.SleepTime),
		).Title("Daily Routine"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Diet type").
				Options(options(dietChoices)...).
				Value(&a.DietType),
			huh.NewSelect[string]().
				Title("Meals per day").
				Options(options(mealsChoices)...).
				Value(&a.MealsPerDay),
			huh.NewMultiSelect[string]().
				Title("Food allergies").
				Options(options(allergyChoices)...).
				Value(&a.Allergies),
			huh.NewSelect[string]().
				Title("How often do you eat processed food?").
				Options(options(processedFoodChoices)...).
				Value(&a.ProcessedFoodFrequency),
		).Title("Eating Habits"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How long do you sleep?").
				Options(options(sleepDurationChoices)...).
				Value(&a.SleepDuration),
			huh.NewSelect[string]().
				Title("How well do you sleep?").
				Options(options(sleepQualityChoices)...).
				Value(&a.SleepQuality),
			huh.NewMultiSelect[string]().
				Title("Health conditions").
				Options(options(healthConditionChoices)...).
				Value(&a.HealthConditions),
		).Title("Sleep & Health"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Fitness goals").
				Options(options(fitnessGoalChoices)...).
				Value(&a.FitnessGoals),
			huh.NewMultiSelect[string]().
				Title("How do you relax?").
				Options(options(relaxationChoices)...).
				Value(&a.RelaxationMethods),
			huh.NewSelect[string]().
				Title("How often do you feel stressed?").
				Options(options(stressChoices)...).
				Value(&a.StressFrequency),
		).Title("Fitness & Mind"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Eco habits you already have").
				Options(options(ecoHabitChoices)...).
				Value(&a.EcoHabits),
			huh.NewSelect[string]().
				Title("Interest in eco-friendly living").
				Options(options(ecoInterestChoices)...).
				Value(&a.EcoInterestLevel),
		).Title("Eco-Friendly Living"),
	).WithTheme(huh.ThemeDracula())
}

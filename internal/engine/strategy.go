package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/models"
)

// Rule is one of the fixed profile-driven condition blocks of the generator.
type Rule uint8

const (
	RuleMorningRoutine Rule = iota + 1
	RuleStressRelief
	RuleWholeFoods
	RuleStrength
	RuleSleepRoutine
	RuleEcoHabit
)

// Rules lists every rule in evaluation order.
var Rules = []Rule{
	RuleMorningRoutine,
	RuleStressRelief,
	RuleWholeFoods,
	RuleStrength,
	RuleSleepRoutine,
	RuleEcoHabit,
}

func (r Rule) String() string {
	switch r {
	case RuleMorningRoutine:
		return "morning_routine"
	case RuleStressRelief:
		return "stress_relief"
	case RuleWholeFoods:
		return "whole_foods"
	case RuleStrength:
		return "strength"
	case RuleSleepRoutine:
		return "sleep_routine"
	case RuleEcoHabit:
		return "eco_habit"
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

func (r Rule) Valid() bool {
	return r >= RuleMorningRoutine && r <= RuleEcoHabit
}

// Category is the task category every task produced by the rule carries.
func (r Rule) Category() models.Category {
	switch r {
	case RuleMorningRoutine, RuleStressRelief:
		return models.CategoryMind
	case RuleWholeFoods:
		return models.CategoryNutrition
	case RuleStrength:
		return models.CategoryFitness
	case RuleSleepRoutine:
		return models.CategoryWellness
	case RuleEcoHabit:
		return models.CategoryEco
	}
	return 0
}

func (r Rule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rule %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Rule) UnmarshalText(text []byte) error {
	for _, candidate := range Rules {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown rule %q", string(text))
}

// RuleConfig holds the tunable parts of one condition block.
type RuleConfig struct {
	Rule       Rule   `yaml:"rule"`
	Enabled    bool   `yaml:"enabled"`
	Points     int    `yaml:"points"`
	Time       string `yaml:"time"` // HH:MM format
	FocusLabel string `yaml:"focus_label"`
}

// Strategy selects which condition blocks run and how they progress.
type Strategy struct {
	Name  string       `yaml:"name"`
	Rules []RuleConfig `yaml:"rules"`
	// TierBounds are the last days of the first and second difficulty tiers.
	TierBounds   [2]int `yaml:"tier_bounds"`
	EcoBlockDays int    `yaml:"eco_block_days"`
}

// DefaultStrategy is the standard 30-day onboarding challenge.
func DefaultStrategy() Strategy {
	return Strategy{
		Name: "default",
		Rules: []RuleConfig{
			{Rule: RuleMorningRoutine, Enabled: true, Points: 15, Time: "06:00", FocusLabel: "Morning Routine"},
			{Rule: RuleStressRelief, Enabled: true, Points: 20, Time: "12:00", FocusLabel: "Stress Management"},
			{Rule: RuleWholeFoods, Enabled: true, Points: 25, Time: "09:00", FocusLabel: "Nutrition Upgrade"},
			{Rule: RuleStrength, Enabled: true, Points: 30, Time: "17:00", FocusLabel: "Fitness & Strength"},
			{Rule: RuleSleepRoutine, Enabled: true, Points: 20, Time: "21:00", FocusLabel: "Sleep Improvement"},
			{Rule: RuleEcoHabit, Enabled: true, Points: 15, Time: "14:00", FocusLabel: "Eco-Living"},
		},
		TierBounds:   [2]int{constants.DefaultTierFirstEnd, constants.DefaultTierSecondEnd},
		EcoBlockDays: constants.DefaultEcoBlockDays,
	}
}

// Rule returns the configuration for r.
func (s Strategy) Rule(r Rule) (RuleConfig, bool) {
	for _, rc := range s.Rules {
		if rc.Rule == r {
			return rc, true
		}
	}
	return RuleConfig{}, false
}

// Validate checks that the strategy can produce a well-formed challenge.
func (s Strategy) Validate() error {
	if s.TierBounds[0] < 1 || s.TierBounds[1] <= s.TierBounds[0] || s.TierBounds[1] >= constants.ChallengeDays {
		return fmt.Errorf("invalid tier bounds %v: need 1 <= first < second < %d", s.TierBounds, constants.ChallengeDays)
	}
	if s.EcoBlockDays < 1 {
		return fmt.Errorf("eco_block_days must be positive, got %d", s.EcoBlockDays)
	}
	seen := make(map[Rule]bool)
	for _, rc := range s.Rules {
		if !rc.Rule.Valid() {
			return fmt.Errorf("invalid rule %d", uint8(rc.Rule))
		}
		if seen[rc.Rule] {
			return fmt.Errorf("duplicate rule %s", rc.Rule)
		}
		seen[rc.Rule] = true
		if rc.Points <= 0 {
			return fmt.Errorf("rule %s: points must be positive, got %d", rc.Rule, rc.Points)
		}
		if _, err := models.SlotForTime(rc.Time); err != nil {
			return fmt.Errorf("rule %s: %w", rc.Rule, err)
		}
	}
	return nil
}

type ruleOverride struct {
	Rule       Rule    `yaml:"rule"`
	Enabled    *bool   `yaml:"enabled"`
	Points     *int    `yaml:"points"`
	Time       *string `yaml:"time"`
	FocusLabel *string `yaml:"focus_label"`
}

type strategyFile struct {
	Name         string         `yaml:"name"`
	TierBounds   []int          `yaml:"tier_bounds"`
	EcoBlockDays int            `yaml:"eco_block_days"`
	Rules        []ruleOverride `yaml:"rules"`
}

// LoadStrategy reads a YAML strategy file and overlays it on DefaultStrategy.
// Fields absent from the file keep their default values.
func LoadStrategy(path string) (Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Strategy{}, fmt.Errorf("failed to read strategy file: %w", err)
	}
	return ParseStrategy(data)
}

// ParseStrategy overlays YAML strategy data on DefaultStrategy.
func ParseStrategy(data []byte) (Strategy, error) {
	var file strategyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Strategy{}, fmt.Errorf("failed to parse strategy: %w", err)
	}

	s := DefaultStrategy()
	if file.Name != "" {
		s.Name = file.Name
	}
	if len(file.TierBounds) != 0 {
		if len(file.TierBounds) != 2 {
			return Strategy{}, fmt.Errorf("tier_bounds must have exactly 2 entries, got %d", len(file.TierBounds))
		}
		s.TierBounds = [2]int{file.TierBounds[0], file.TierBounds[1]}
	}
	if file.EcoBlockDays != 0 {
		s.EcoBlockDays = file.EcoBlockDays
	}

	for _, o := range file.Rules {
		idx := -1
		for i := range s.Rules {
			if s.Rules[i].Rule == o.Rule {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Strategy{}, fmt.Errorf("unknown rule %q in strategy", o.Rule)
		}
		rc := &s.Rules[idx]
		if o.Enabled != nil {
			rc.Enabled = *o.Enabled
		}
		if o.Points != nil {
			rc.Points = *o.Points
		}
		if o.Time != nil {
			rc.Time = *o.Time
		}
		if o.FocusLabel != nil {
			rc.FocusLabel = *o.FocusLabel
		}
	}

	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/models"
)

// Generator produces the pre-computed 30-day challenge for a profile.
// It is pure: the same profile and strategy always yield the same challenge.
type Generator struct {
	strategy Strategy
}

// NewGenerator returns a generator for the given strategy.
func NewGenerator(strategy Strategy) (*Generator, error) {
	if err := strategy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy %q: %w", strategy.Name, err)
	}
	return &Generator{strategy: strategy}, nil
}

// Strategy returns the strategy the generator was built with.
func (g *Generator) Strategy() Strategy {
	return g.strategy
}

// Generate builds the full challenge, one DayPlan per day.
func (g *Generator) Generate(profile models.Profile) (models.Challenge, error) {
	start, err := challengeStart(profile)
	if err != nil {
		return models.Challenge{}, err
	}

	ch := models.Challenge{
		Challenges: make([]models.DayPlan, 0, constants.ChallengeDays),
		TotalDays:  constants.ChallengeDays,
		FocusAreas: []string{},
		StartDate:  start.Format(constants.DateFormat),
		Strategy:   g.strategy.Name,
	}

	fired := make(map[Rule]bool)
	for day := constants.FirstDay; day <= constants.ChallengeDays; day++ {
		plan, rules := g.buildDay(profile, start, day)
		for _, r := range rules {
			fired[r] = true
		}
		ch.Challenges = append(ch.Challenges, plan)
		ch.EstimatedPoints += plan.TotalPoints
	}

	for _, rc := range g.strategy.Rules {
		if fired[rc.Rule] && rc.FocusLabel != "" {
			ch.FocusAreas = append(ch.FocusAreas, rc.FocusLabel)
		}
	}

	return ch, nil
}

// GenerateDay builds the plan for a single day of the challenge.
func (g *Generator) GenerateDay(profile models.Profile, day int) (models.DayPlan, error) {
	if err := CheckDay(day); err != nil {
		return models.DayPlan{}, err
	}
	start, err := challengeStart(profile)
	if err != nil {
		return models.DayPlan{}, err
	}
	plan, _ := g.buildDay(profile, start, day)
	return plan, nil
}

// FocusAreas returns the labels of the rules that fire for the profile.
func (g *Generator) FocusAreas(profile models.Profile) []string {
	areas := []string{}
	for _, rc := range g.strategy.Rules {
		if rc.Enabled && ruleApplies(rc.Rule, profile) && rc.FocusLabel != "" {
			areas = append(areas, rc.FocusLabel)
		}
	}
	return areas
}

// ChallengeDay looks up a day of a stored challenge with the same boundary
// rules as generation.
func ChallengeDay(ch models.Challenge, day int) (models.DayPlan, error) {
	if err := CheckDay(day); err != nil {
		return models.DayPlan{}, err
	}
	plan, ok := ch.Day(day)
	if !ok {
		return models.DayPlan{}, &InvalidDayIndexError{Day: day}
	}
	return plan, nil
}

func (g *Generator) buildDay(profile models.Profile, start time.Time, day int) (models.DayPlan, []Rule) {
	var tasks []models.Task
	var fired []Rule

	for _, rc := range g.strategy.Rules {
		if !rc.Enabled || !ruleApplies(rc.Rule, profile) {
			continue
		}
		content := g.ruleContent(rc.Rule, day)
		slot, _ := models.SlotForTime(rc.Time) // validated by Strategy.Validate
		tasks = append(tasks, models.Task{
			ID:       fmt.Sprintf("day-%d-task-%d", day, len(tasks)),
			Time:     rc.Time,
			Category: rc.Rule.Category(),
			TimeSlot: slot,
			Title:    content.title,
			Points:   rc.Points,
			Reason:   content.reason,
			Icon:     content.icon,
		})
		fired = append(fired, rc.Rule)
	}

	date := start.AddDate(0, 0, day-1).Format(constants.DateFormat)
	return models.NewDayPlan(day, date, tasks), fired
}

func challengeStart(profile models.Profile) (time.Time, error) {
	if profile.ChallengeStartDate == "" {
		return time.Time{}, &ProfileIncompleteError{Field: "challenge_start_date"}
	}
	start, err := time.Parse(constants.DateFormat, profile.ChallengeStartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid challenge start date %q: %w", profile.ChallengeStartDate, &ProfileIncompleteError{Field: "challenge_start_date"})
	}
	return start, nil
}

func ruleApplies(r Rule, p models.Profile) bool {
	switch r {
	case RuleMorningRoutine:
		return p.WakeTime == "early"
	case RuleStressRelief:
		return p.HasHealthCondition("stress")
	case RuleWholeFoods:
		return p.ProcessedFoodFrequency == "often"
	case RuleStrength:
		return p.HasFitnessGoal("strength")
	case RuleSleepRoutine:
		return p.SleepQuality == "poor"
	case RuleEcoHabit:
		return p.EcoInterestLevel == "high"
	}
	return false
}

type ruleText struct {
	title  string
	reason string
	icon   string
}

// tier maps a day to 0, 1 or 2 using the strategy's tier bounds.
func (g *Generator) tier(day int) int {
	switch {
	case day <= g.strategy.TierBounds[0]:
		return 0
	case day <= g.strategy.TierBounds[1]:
		return 1
	default:
		return 2
	}
}

func (g *Generator) ruleContent(r Rule, day int) ruleText {
	switch r {
	case RuleMorningRoutine:
		return ruleText{
			title: [3]string{
				"Practice 5 minutes of morning breathing",
				"10-minute sunrise meditation",
				"15-minute mindful morning routine",
			}[g.tier(day)],
			reason: "Early risers benefit from grounding morning practices",
			icon:   "🌅",
		}
	case RuleStressRelief:
		return ruleText{
			title: [3]string{
				"Practice progressive muscle relaxation",
				"Take 10 deep breaths mindfully",
				"Write down 3 things you're grateful for",
			}[day%3],
			reason: "Stress management through mindfulness and gratitude practices",
			icon:   "🧠",
		}
	case RuleWholeFoods:
		advice := [3]string{
			"Replace one processed snack with fruit",
			"Prepare one fresh meal instead of packaged",
			"Create a full day of whole foods meals",
		}[g.tier(day)]
		return ruleText{
			title:  fmt.Sprintf("Day %d: %s", day, advice),
			reason: "Gradual transition from processed to whole foods for better health",
			icon:   "🥗",
		}
	case RuleStrength:
		var title string
		switch g.tier(day) {
		case 0:
			title = fmt.Sprintf("%d push-ups or wall push-ups", 5+day/2)
		case 1:
			title = fmt.Sprintf("%d bodyweight squats", 10+day)
		default:
			title = "Full 20-minute strength circuit"
		}
		return ruleText{
			title:  title,
			reason: "Progressive strength building adapted to your fitness level",
			icon:   "💪",
		}
	case RuleSleepRoutine:
		return ruleText{
			title: [4]string{
				"No screens 1 hour before bed",
				"Gentle stretching for 10 minutes",
				"Read for 15 minutes",
				"Practice gratitude journaling",
			}[day%4],
			reason: "Evening routine to improve sleep quality and duration",
			icon:   "🌙",
		}
	case RuleEcoHabit:
		block := min((day-1)/g.strategy.EcoBlockDays, 3)
		return ruleText{
			title: [4]string{
				"Use reusable water bottle all day",
				"Choose one eco-friendly product",
				"Reduce plastic usage by one item",
				"Share one eco-tip with someone",
			}[block],
			reason: "Building sustainable habits for environmental consciousness",
			icon:   "♻️",
		}
	}
	return ruleText{}
}

package engine

import (
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/models"
)

// taskContent is the day-dependent part of a synthesized task.
type taskContent struct {
	title       string
	description string
	reason      string
	icon        string
	points      int
	minutes     int
}

// slotRule emits at most one task of a given kind at a fixed clock time.
type slotRule struct {
	kind     string
	time     string // HH:MM format
	category models.Category
	when     func(p models.Profile, day int) bool // nil means always
	build    func(p models.Profile, day int) taskContent
}

// Synthesizer derives a single day's schedule on demand. Unlike the
// Generator its output is a view and is never persisted.
type Synthesizer struct {
	rules []slotRule
}

// NewSynthesizer returns a synthesizer with the standard daily rules.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{rules: dailyRules()}
}

// SynthesizeDay builds the schedule for day, marking tasks whose id is in completed.
func (s *Synthesizer) SynthesizeDay(profile models.Profile, day int, completed map[string]bool) (models.DaySchedule, error) {
	if err := CheckDay(day); err != nil {
		return models.DaySchedule{}, err
	}

	sched := models.DaySchedule{
		Day:       day,
		Morning:   []models.ScheduledTask{},
		Afternoon: []models.ScheduledTask{},
		Evening:   []models.ScheduledTask{},
		Night:     []models.ScheduledTask{},
	}

	for _, r := range s.rules {
		if r.when != nil && !r.when(profile, day) {
			continue
		}
		slot, err := models.SlotForTime(r.time)
		if err != nil {
			return models.DaySchedule{}, fmt.Errorf("rule %s: %w", r.kind, err)
		}
		c := r.build(profile, day)
		id := TaskID(slot, r.kind, day)
		st := models.ScheduledTask{
			Task: models.Task{
				ID:          id,
				Time:        r.time,
				Category:    r.category,
				TimeSlot:    slot,
				Title:       c.title,
				Description: c.description,
				Points:      c.points,
				Reason:      c.reason,
				Icon:        c.icon,
			},
			Kind:      r.kind,
			Minutes:   c.minutes,
			Completed: completed[id],
		}
		switch slot {
		case models.SlotMorning:
			sched.Morning = append(sched.Morning, st)
		case models.SlotAfternoon:
			sched.Afternoon = append(sched.Afternoon, st)
		case models.SlotEvening:
			sched.Evening = append(sched.Evening, st)
		case models.SlotNight:
			sched.Night = append(sched.Night, st)
		}
	}

	return sched, nil
}

// SynthesizeToday builds the schedule for the profile's current day.
func (s *Synthesizer) SynthesizeToday(profile models.Profile, completed map[string]bool) (models.DaySchedule, error) {
	if profile.CurrentDay < 0 {
		return models.DaySchedule{}, &ProfileIncompleteError{Field: "current_day"}
	}
	return s.SynthesizeDay(profile, profile.EffectiveDay(), completed)
}

// Preview returns the schedule for the day after day, with nothing completed.
func (s *Synthesizer) Preview(profile models.Profile, day int) (models.DaySchedule, error) {
	return s.SynthesizeDay(profile, day+1, nil)
}

// TaskID is the stable identifier of a synthesized task.
func TaskID(slot models.TimeSlot, kind string, day int) string {
	return fmt.Sprintf("%s-%s-%d", slot, kind, day)
}

// DetoxMinutes is the required screen-free time before sleep.
func DetoxMinutes(p models.Profile) int {
	if needsSleepHelp(p) {
		return 60
	}
	return 30
}

// intensity scales from 0 to 10 across the challenge.
func intensity(day int) int {
	return min(day, constants.ChallengeDays) * 10 / constants.ChallengeDays
}

func needsSleepHelp(p models.Profile) bool {
	return p.SleepQuality == "poor"
}

func wantsStrength(p models.Profile) bool {
	return p.HasFitnessGoal("build_strength") || p.HasFitnessGoal("strength")
}

type ecoOption struct {
	title, description, icon string
}

var ecoRotation = [4]ecoOption{
	{"Switch off unused lights", "Turn off lights in rooms not in use", "💡"},
	{"Use reusable water bottle", "Refill your bottle instead of using plastic", "♻️"},
	{"Segregate waste", "Separate recyclables from general waste", "🗂️"},
	{"Use eco-friendly products", "Choose natural cleaning products today", "🌱"},
}

func dailyRules() []slotRule {
	return []slotRule{
		// Morning
		{
			kind: "hydration", time: "07:00", category: models.CategoryBody,
			build: func(p models.Profile, day int) taskContent {
				if day < 10 {
					return taskContent{
						title:       "Drink warm water with lemon",
						description: "Start your day with 1 glass of warm lemon water",
						reason:      "Hydration first thing kick-starts digestion",
						icon:        "🍋", points: 15,
					}
				}
				return taskContent{
					title:       "Morning detox water",
					description: "Try cucumber mint water or ginger lemon",
					reason:      "Hydration first thing kick-starts digestion",
					icon:        "🍋", points: 15,
				}
			},
		},
		{
			kind: "meditation", time: "07:15", category: models.CategoryMind,
			when: func(p models.Profile, day int) bool {
				return p.StressFrequency != "rarely" || day > 5
			},
			build: func(p models.Profile, day int) taskContent {
				reason := "Mindfulness practice builds as the challenge progresses"
				if p.StressFrequency != "rarely" {
					reason = "You reported regular stress; a calm start helps"
				}
				c := taskContent{
					title:       "5-min breathing exercise",
					description: "Simple deep breathing to start your day",
					reason:      reason,
					icon:        "🧘", points: 20 + intensity(day), minutes: 5,
				}
				if day >= 15 {
					c.minutes = 10
					c.title = "10-min meditation"
					c.description = "Guided meditation or mindfulness practice"
				}
				return c
			},
		},
		{
			kind: "skincare", time: "07:30", category: models.CategorySelfCare,
			build: func(p models.Profile, day int) taskContent {
				c := taskContent{
					title:       "Natural face wash",
					description: "Use gentle, natural face cleanser",
					reason:      "A simple natural skincare routine every morning",
					icon:        "🌿", points: 10,
				}
				if day >= 20 {
					c.description = "Try DIY face pack with natural ingredients"
				}
				return c
			},
		},

		// Afternoon
		{
			kind: "meal", time: "12:30", category: models.CategoryNutrition,
			build: func(p models.Profile, day int) taskContent {
				c := taskContent{icon: "🥗", points: 25}
				if p.DietType == "vegetarian" || p.DietType == "vegan" {
					c.reason = fmt.Sprintf("Plant-based lunch ideas for your %s diet", p.DietType)
					if day < 10 {
						c.title, c.description = "Simple salad bowl", "Mixed greens with seasonal vegetables"
					} else {
						c.title, c.description = "Power bowl with quinoa", "Quinoa, roasted vegetables, and tahini dressing"
					}
					return c
				}
				c.reason = "A balanced lunch keeps energy steady through the afternoon"
				if day < 10 {
					c.title, c.description = "Healthy lunch", "Balanced meal with vegetables"
				} else {
					c.title, c.description = "Protein-balanced lunch", "Half a plate of vegetables, lean protein and whole grains"
				}
				return c
			},
		},
		{
			kind: "hydration", time: "14:00", category: models.CategoryBody,
			build: func(p models.Profile, day int) taskContent {
				return taskContent{
					title:       "Stay hydrated",
					description: "Drink 2 glasses of water or herbal tea",
					reason:      "Afternoon dips are often dehydration",
					icon:        "💧", points: 10,
				}
			},
		},
		{
			kind: "detox", time: "15:00", category: models.CategoryMind,
			when: func(p models.Profile, day int) bool { return day > 7 },
			build: func(p models.Profile, day int) taskContent {
				c := taskContent{
					title:       "15-min phone break",
					description: "Stay away from screens for 15 minutes",
					reason:      "Screen breaks unlock after the first week",
					icon:        "📵", points: 15 + intensity(day), minutes: 15,
				}
				if day >= 20 {
					c.minutes = 30
					c.title = "30-min digital detox"
					c.description = "Complete digital break - read or meditate instead"
				}
				return c
			},
		},

		// Evening
		{
			kind: "fitness", time: "17:30", category: models.CategoryFitness,
			build: func(p models.Profile, day int) taskContent {
				switch {
				case wantsStrength(p) && day > 10:
					return taskContent{
						title:       "15-min strength training",
						description: "Bodyweight exercises or light weights",
						reason:      "Strength work for your build-strength goal",
						icon:        "💪", points: 30, minutes: 15,
					}
				case p.HasFitnessGoal("flexibility") || day > 15:
					return taskContent{
						title:       "20-min yoga session",
						description: "Gentle yoga flow for flexibility and relaxation",
						reason:      "Yoga improves flexibility and winds down the day",
						icon:        "🧘", points: 30, minutes: 20,
					}
				default:
					return taskContent{
						title:       "20-min walk",
						description: "Gentle evening walk outdoors",
						reason:      "Light daily movement builds the base for harder sessions",
						icon:        "🚶", points: 30, minutes: 20,
					}
				}
			},
		},
		{
			kind: "eco", time: "18:30", category: models.CategoryEco,
			when: func(p models.Profile, day int) bool {
				return len(p.EcoHabits) > 0 || day > 5
			},
			build: func(p models.Profile, day int) taskContent {
				opt := ecoRotation[day%len(ecoRotation)]
				return taskContent{
					title:       opt.title,
					description: opt.description,
					reason:      "One small sustainable habit each day",
					icon:        opt.icon, points: 20,
				}
			},
		},
		{
			kind: "tea", time: "19:30", category: models.CategoryWellness,
			build: func(p models.Profile, day int) taskContent {
				c := taskContent{
					title:       "Herbal tea break",
					description: "Chamomile or ginger tea",
					reason:      "A warm caffeine-free drink to relax",
					icon:        "🍵", points: 15,
				}
				if day >= 15 {
					c.description = "Try turmeric milk or ashwagandha tea"
				}
				return c
			},
		},

		// Night
		{
			kind: "skincare", time: "21:00", category: models.CategorySelfCare,
			build: func(p models.Profile, day int) taskContent {
				if needsSleepHelp(p) {
					return taskContent{
						title:       "Relaxing oil massage",
						description: "Self-massage with coconut/sesame oil",
						reason:      "Massage calms the body when sleep quality is poor",
						icon:        "💆", points: 15,
					}
				}
				return taskContent{
					title:       "Night skincare routine",
					description: "Natural moisturizer and gentle cleansing",
					reason:      "A consistent wind-down routine",
					icon:        "💆", points: 15,
				}
			},
		},
		{
			kind: "journal", time: "21:30", category: models.CategoryMind,
			when: func(p models.Profile, day int) bool { return day > 3 },
			build: func(p models.Profile, day int) taskContent {
				if day < 14 {
					return taskContent{
						title:       "Gratitude practice",
						description: "Write 3 things you're grateful for",
						reason:      "Gratitude journaling improves mood over time",
						icon:        "✍️", points: 20,
					}
				}
				return taskContent{
					title:       "Reflection journal",
					description: "Reflect on the day and set tomorrow's intention",
					reason:      "Reflection turns daily habits into lasting ones",
					icon:        "✍️", points: 20,
				}
			},
		},
		{
			kind: "detox", time: "22:00", category: models.CategoryMind,
			build: func(p models.Profile, day int) taskContent {
				mins := DetoxMinutes(p)
				c := taskContent{
					title:       "Digital detox 30 minutes before bed",
					description: "Put devices away 30 minutes before bed",
					reason:      "Less blue light before bed means better sleep",
					icon:        "📵", points: 25, minutes: mins,
				}
				if mins == 60 {
					c.title = "Digital detox 1 hour before bed"
					c.description = "No screens 1 hour before sleep"
					c.reason = "You reported poor sleep; a longer screen-free window helps"
				}
				return c
			},
		},
	}
}

package tracker

import (
	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/utils"
)

// ComputeStreak counts consecutive calendar days ending on today that appear
// in dates. A day with no completion ends the run, so the streak is 0 when
// today itself is missing. Malformed dates are ignored.
func ComputeStreak(dates []string, today string) int {
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if _, err := utils.ParseDate(d); err == nil {
			seen[d] = true
		}
	}

	streak := 0
	day := today
	for seen[day] {
		streak++
		prev, err := utils.AddDays(day, -1)
		if err != nil {
			break
		}
		day = prev
	}
	return streak
}

// StreakBonus is the display-only bonus for a streak. It is recomputed on
// every read and never persisted.
func StreakBonus(streak int) int {
	switch {
	case streak >= 7:
		return constants.StreakBonusWeek
	case streak >= 5:
		return constants.StreakBonusFiveDays
	case streak >= 3:
		return constants.StreakBonusThreeDays
	default:
		return 0
	}
}

// AwardPoints returns profile with points added to its total.
func AwardPoints(profile models.Profile, points int) models.Profile {
	profile.TotalPoints += points
	return profile
}

// Milestone is a streak length worth celebrating.
type Milestone struct {
	Days  int
	Icon  string
	Title string
}

var streakMilestones = []Milestone{
	{Days: 3, Icon: "🔥", Title: "Three-Day Spark"},
	{Days: 5, Icon: "⚡", Title: "Five-Day Flow"},
	{Days: 7, Icon: "🏅", Title: "Streak Milestone!"},
	{Days: 14, Icon: "🌟", Title: "Two-Week Habit"},
	{Days: 21, Icon: "💎", Title: "Three-Week Transformation"},
	{Days: 30, Icon: "⚔️", Title: "Wellness Warrior"},
}

// Milestones returns every streak milestone reached by streak, shortest first.
func Milestones(streak int) []Milestone {
	var out []Milestone
	for _, m := range streakMilestones {
		if streak >= m.Days {
			out = append(out, m)
		}
	}
	return out
}

// NextMilestone returns the first milestone streak has not reached.
func NextMilestone(streak int) (Milestone, bool) {
	for _, m := range streakMilestones {
		if streak < m.Days {
			return m, true
		}
	}
	return Milestone{}, false
}

package tracker

import (
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/utils"
)

// streakLookbackDays bounds how much completion history a summary reads.
const streakLookbackDays = 366

// Summary is the progress overlay shown next to a day's tasks. Bonus values
// here are presentational; only TotalPoints reflects stored state.
type Summary struct {
	Day           int              `json:"day"`
	DaysRemaining int              `json:"days_remaining"`
	TotalPoints   int              `json:"total_points"`
	Progress      Progress         `json:"progress"`
	Message       string           `json:"message"`
	Badges        []DailyMilestone `json:"badges,omitempty"`
	Streak        int              `json:"streak"`
	StreakBonus   int              `json:"streak_bonus"`
	Milestones    []Milestone      `json:"milestones,omitempty"`
	NextMilestone *Milestone       `json:"next_milestone,omitempty"`
}

// Summary reads the profile and completion history and builds the overlay
// for the session date.
func (s *Session) Summary() (Summary, error) {
	profile, err := s.store.GetProfile(s.userID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load profile: %w", err)
	}

	since, err := utils.AddDays(s.date, -streakLookbackDays)
	if err != nil {
		return Summary{}, err
	}
	dates, err := s.store.GetCompletionDates(s.userID, since, s.date)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load completion history: %w", err)
	}

	progress := s.Progress()
	streak := ComputeStreak(dates, s.date)
	day := profile.EffectiveDay()

	sum := Summary{
		Day:           day,
		DaysRemaining: max(constants.ChallengeDays-day, 0),
		TotalPoints:   profile.TotalPoints,
		Progress:      progress,
		Message:       Message(progress.Percentage),
		Badges:        DailyMilestones(progress),
		Streak:        streak,
		StreakBonus:   StreakBonus(streak),
		Milestones:    Milestones(streak),
	}
	if next, ok := NextMilestone(streak); ok {
		sum.NextMilestone = &next
	}
	return sum, nil
}

package tracker

import (
	"math"

	"github.com/julianstephens/wellpath/internal/models"
)

// Progress is the completion state of one day's task set.
type Progress struct {
	Completed      int `json:"completed"`
	Total          int `json:"total"`
	Percentage     int `json:"percentage"` // rounded to the nearest whole percent
	Points         int `json:"points"`     // points earned from completed tasks
	PossiblePoints int `json:"possible_points"`
}

// Perfect reports whether every task of a non-empty day is done.
func (p Progress) Perfect() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// ComputeProgress aggregates completion state. Ids in completed that are not
// part of tasks are ignored.
func ComputeProgress(tasks []models.Task, completed map[string]bool) Progress {
	var p Progress
	for _, t := range tasks {
		p.Total++
		p.PossiblePoints += t.Points
		if completed[t.ID] {
			p.Completed++
			p.Points += t.Points
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// CompletedIDs turns completion records into a task id set.
func CompletedIDs(records []models.CompletionRecord) map[string]bool {
	ids := make(map[string]bool, len(records))
	for _, r := range records {
		ids[r.TaskID] = true
	}
	return ids
}

// DailyMilestone is a badge unlocked by finishing a share of the day.
type DailyMilestone struct {
	Icon  string
	Title string
	// Threshold is the completed share of the day, in percent.
	Threshold int
}

var dailyMilestones = []DailyMilestone{
	{Icon: "🌱", Title: "Quarter Day Champion", Threshold: 25},
	{Icon: "🌿", Title: "Halfway Hero", Threshold: 50},
	{Icon: "🌳", Title: "Three-Quarter Tiger", Threshold: 75},
	{Icon: "🏆", Title: "Perfect Day Master", Threshold: 100},
}

// DailyMilestones returns the badges unlocked by p, lowest first. Thresholds
// compare raw counts so rounding never unlocks a badge early.
func DailyMilestones(p Progress) []DailyMilestone {
	var out []DailyMilestone
	if p.Total == 0 {
		return out
	}
	for _, m := range dailyMilestones {
		if p.Completed*100 >= p.Total*m.Threshold {
			out = append(out, m)
		}
	}
	return out
}

// Message returns the encouragement line for a completion percentage.
func Message(percentage int) string {
	switch {
	case percentage >= 100:
		return "🎉 Perfect day! You're unstoppable!"
	case percentage >= 80:
		return "🌟 Almost there! Finish strong!"
	case percentage >= 50:
		return "💪 Great progress! Keep it up!"
	case percentage >= 25:
		return "🚀 You're building momentum!"
	default:
		return "✨ Every journey starts with a single step!"
	}
}

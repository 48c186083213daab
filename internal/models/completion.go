package models

import "time"

// CompletionRecord is an append-only record that a task was completed on a date.
type CompletionRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TaskID       string    `json:"task_id"`
	Date         string    `json:"date"` // YYYY-MM-DD format
	PointsEarned int       `json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
}

// CompletionWrite is a single atomic unit handed to storage: the completion
// record, its points, and an optional perfect-day bonus for the same date.
type CompletionWrite struct {
	Record          CompletionRecord
	PerfectDayBonus int
}

// CompletionOutcome reports what a CompletionWrite actually changed.
type CompletionOutcome struct {
	Record            CompletionRecord
	Created           bool // false when the (task, date) pair already existed
	PerfectDayAwarded bool
	TotalPoints       int // profile total after the write
}

package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

// Session tracks one user's completions against one day's task set. A
// session is built per request and is not safe for concurrent use.
type Session struct {
	store  storage.Provider
	userID string
	date   string

	tasks     []models.Task
	byID      map[string]models.Task
	completed map[string]bool

	now   func() time.Time
	newID func() string
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides how completion record ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// CompletionResult describes the effect of a CompleteTask call.
type CompletionResult struct {
	Record            models.CompletionRecord
	Created           bool // false for a repeated completion
	PerfectDayAwarded bool
	TotalPoints       int
	Progress          Progress
}

// NewSession loads the completions already stored for date.
func NewSession(store storage.Provider, userID, date string, tasks []models.Task, opts ...Option) (*Session, error) {
	if userID == "" {
		return nil, &engine.ProfileIncompleteError{Field: "user_id"}
	}

	records, err := store.GetCompletionsForDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions for %s: %w", date, err)
	}

	s := &Session{
		store:     store,
		userID:    userID,
		date:      date,
		tasks:     tasks,
		byID:      make(map[string]models.Task, len(tasks)),
		completed: CompletedIDs(records),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, t := range tasks {
		s.byID[t.ID] = t
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) UserID() string       { return s.userID }
func (s *Session) Date() string         { return s.date }
func (s *Session) Tasks() []models.Task { return s.tasks }

// Completed reports whether taskID is done for the session date.
func (s *Session) Completed(taskID string) bool { return s.completed[taskID] }

// CompletedIDs returns a copy of the completed task id set.
func (s *Session) CompletedIDs() map[string]bool {
	ids := make(map[string]bool, len(s.completed))
	for id, done := range s.completed {
		ids[id] = done
	}
	return ids
}

func (s *Session) Progress() Progress {
	return ComputeProgress(s.tasks, s.completed)
}

// CompleteTask records taskID as done. Repeating a completion is a successful
// no-op. When the call finishes the last open task of the day the perfect-day
// bonus rides along in the same storage write.
func (s *Session) CompleteTask(taskID string) (CompletionResult, error) {
	task, ok := s.byID[taskID]
	if !ok {
		return CompletionResult{}, &UnknownTaskError{TaskID: taskID}
	}

	write := models.CompletionWrite{
		Record: models.CompletionRecord{
			ID:           s.newID(),
			UserID:       s.userID,
			TaskID:       task.ID,
			Date:         s.date,
			PointsEarned: task.Points,
			CompletedAt:  s.now().UTC(),
		},
	}
	if s.finishesDay(task.ID) {
		write.PerfectDayBonus = constants.PerfectDayBonus
	}

	out, err := s.store.RecordCompletion(write)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to record completion: %w", err)
	}
	s.completed[task.ID] = true

	if out.Created {
		logger.Info("Task completed", "user", s.userID, "task", task.ID, "date", s.date, "points", task.Points)
	}
	if out.PerfectDayAwarded {
		logger.Info("Perfect day bonus awarded", "user", s.userID, "date", s.date, "bonus", write.PerfectDayBonus)
	}

	return CompletionResult{
		Record:            out.Record,
		Created:           out.Created,
		PerfectDayAwarded: out.PerfectDayAwarded,
		TotalPoints:       out.TotalPoints,
		Progress:          s.Progress(),
	}, nil
}

// finishesDay reports whether completing taskID leaves no open task.
func (s *Session) finishesDay(taskID string) bool {
	for _, t := range s.tasks {
		if t.ID != taskID && !s.completed[t.ID] {
			return false
		}
	}
	return len(s.tasks) > 0
}

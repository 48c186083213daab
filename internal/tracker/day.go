package tracker

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

// Day bundles one challenge day: the live schedule, the pre-generated plan
// for the same day and a session tracking completions of both.
type Day struct {
	Number   int
	Date     string
	Profile  models.Profile
	Schedule models.DaySchedule
	Plan     *models.DayPlan // nil when no challenge is saved
	Session  *Session

	synth *engine.Synthesizer
}

// OpenDay builds the task set for the profile's current day on date.
func OpenDay(store storage.Provider, synth *engine.Synthesizer, profile models.Profile, date string, opts ...Option) (*Day, error) {
	if profile.CurrentDay < 0 {
		return nil, &engine.ProfileIncompleteError{Field: "current_day"}
	}
	number := profile.EffectiveDay()
	if err := engine.CheckDay(number); err != nil {
		return nil, err
	}

	var plan *models.DayPlan
	ch, err := store.LoadChallenge(profile.UserID)
	switch {
	case err == nil:
		if p, ok := ch.Day(number); ok {
			plan = &p
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	schedule, err := synth.SynthesizeDay(profile, number, nil)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(store, profile.UserID, date, MergeTasks(schedule, plan), opts...)
	if err != nil {
		return nil, err
	}

	d := &Day{
		Number:   number,
		Date:     date,
		Profile:  profile,
		Plan:     plan,
		Session:  session,
		synth:    synth,
		Schedule: schedule,
	}
	if err := d.Refresh(); err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh recomputes the schedule's completed flags from the session.
func (d *Day) Refresh() error {
	schedule, err := d.synth.SynthesizeDay(d.Profile, d.Number, d.Session.CompletedIDs())
	if err != nil {
		return err
	}
	d.Schedule = schedule
	return nil
}

// Complete records a completion and refreshes the schedule.
func (d *Day) Complete(taskID string) (CompletionResult, error) {
	res, err := d.Session.CompleteTask(taskID)
	if err != nil {
		return res, err
	}
	return res, d.Refresh()
}

// MergeTasks returns the schedule tasks followed by the plan tasks. Ids
// already present are skipped.
func MergeTasks(schedule models.DaySchedule, plan *models.DayPlan) []models.Task {
	tasks := schedule.Tasks()
	if plan == nil {
		return tasks
	}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = true
	}
	for _, t := range plan.Tasks {
		if !seen[t.ID] {
			tasks = append(tasks, t)
			seen[t.ID] = true
		}
	}
	return tasks
}

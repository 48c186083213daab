// Package storagetest runs the same behavioural checks against every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

// Run exercises p, which must already be initialized.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("Settings", func(t *testing.T) { testSettings(t, p) })
	t.Run("Profiles", func(t *testing.T) { testProfiles(t, p) })
	t.Run("UpdateProfile", func(t *testing.T) { testUpdateProfile(t, p) })
	t.Run("RecordCompletion", func(t *testing.T) { testRecordCompletion(t, p) })
	t.Run("PerfectDayOnce", func(t *testing.T) { testPerfectDayOnce(t, p) })
	t.Run("CompletionDates", func(t *testing.T) { testCompletionDates(t, p) })
	t.Run("UnknownProfile", func(t *testing.T) { testUnknownProfile(t, p) })
	t.Run("Challenges", func(t *testing.T) { testChallenges(t, p) })
}

// NewUserID returns a user id unique to this test run.
func NewUserID(t *testing.T) string {
	t.Helper()
	return "test-" + uuid.NewString()
}

// SeedProfile saves a minimal onboarded profile for userID.
func SeedProfile(t *testing.T, p storage.Provider, userID string) models.Profile {
	t.Helper()
	prof := models.Profile{
		UserID:              userID,
		DisplayName:         "Asha",
		WakeTime:            "early",
		SleepQuality:        "poor",
		FitnessGoals:        []string{"build_strength", "flexibility"},
		EcoHabits:           []string{"recycling"},
		CurrentDay:          1,
		ChallengeStartDate:  "2026-06-01",
		OnboardingCompleted: true,
	}
	if err := p.SaveProfile(prof); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	return prof
}

// Completion builds a completion write for a task.
func Completion(userID, taskID, date string, points, bonus int) models.CompletionWrite {
	return models.CompletionWrite{
		Record: models.CompletionRecord{
			ID:           uuid.NewString(),
			UserID:       userID,
			TaskID:       taskID,
			Date:         date,
			PointsEarned: points,
			CompletedAt:  time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		PerfectDayBonus: bonus,
	}
}

func testSettings(t *testing.T, p storage.Provider) {
	settings, err := p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("expected default timezone Local, got %q", settings.Timezone)
	}

	if err := p.SaveSettings(models.Settings{Timezone: "Asia/Kolkata"}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Timezone != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %q", got.Timezone)
	}
	_ = p.SaveSettings(models.Settings{Timezone: "Local"})
}

func testProfiles(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	want := SeedProfile(t, p, userID)

	got, err := p.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.DisplayName != want.DisplayName || got.SleepQuality != want.SleepQuality || !got.OnboardingCompleted {
		t.Errorf("profile mismatch: %+v", got)
	}
	if len(got.FitnessGoals) != 2 || got.FitnessGoals[0] != "build_strength" {
		t.Errorf("fitness goals not preserved: %v", got.FitnessGoals)
	}
	if got.Allergies != nil {
		t.Errorf("expected nil allergies, got %v", got.Allergies)
	}

	want.EcoInterestLevel = "high"
	want.EcoHabits = nil
	if err := p.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile (update) failed: %v", err)
	}
	got, err = p.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.EcoInterestLevel != "high" || len(got.EcoHabits) != 0 {
		t.Errorf("profile update not applied: %+v", got)
	}

	if _, err := p.GetProfile(NewUserID(t)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown profile, got %v", err)
	}
}

func testUpdateProfile(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	SeedProfile(t, p, userID)

	day := 7
	if err := p.UpdateProfile(userID, models.ProfilePatch{CurrentDay: &day}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	points := 120
	if err := p.UpdateProfile(userID, models.ProfilePatch{TotalPoints: &points}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := p.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.CurrentDay != 7 || got.TotalPoints != 120 {
		t.Errorf("expected day 7 / 120 points, got day %d / %d points", got.CurrentDay, got.TotalPoints)
	}
	if got.SleepQuality != "poor" {
		t.Errorf("patch touched unrelated fields: %+v", got)
	}

	if err := p.UpdateProfile(NewUserID(t), models.ProfilePatch{CurrentDay: &day}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testRecordCompletion(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	SeedProfile(t, p, userID)

	first := Completion(userID, "morning-hydration-1", "2026-06-01", 15, 0)
	out, err := p.RecordCompletion(first)
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if !out.Created || out.TotalPoints != 15 || out.PerfectDayAwarded {
		t.Errorf("unexpected outcome: %+v", out)
	}

	// Retried delivery with a fresh id returns the stored record untouched.
	retry := Completion(userID, "morning-hydration-1", "2026-06-01", 15, 0)
	out, err = p.RecordCompletion(retry)
	if err != nil {
		t.Fatalf("RecordCompletion (retry) failed: %v", err)
	}
	if out.Created || out.Record.ID != first.Record.ID || out.TotalPoints != 15 {
		t.Errorf("duplicate completion changed state: %+v", out)
	}

	// Same task on another date is a new completion.
	if out, err = p.RecordCompletion(Completion(userID, "morning-hydration-1", "2026-06-02", 15, 0)); err != nil || !out.Created {
		t.Fatalf("expected new completion on next date, got %+v, %v", out, err)
	}

	prof, err := p.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if prof.TotalPoints != 30 {
		t.Errorf("expected 30 total points, got %d", prof.TotalPoints)
	}

	recs, err := p.GetCompletionsForDate(userID, "2026-06-01")
	if err != nil {
		t.Fatalf("GetCompletionsForDate failed: %v", err)
	}
	if len(recs) != 1 || recs[0].TaskID != "morning-hydration-1" || recs[0].PointsEarned != 15 {
		t.Errorf("unexpected records: %+v", recs)
	}
	if !recs[0].CompletedAt.Equal(first.Record.CompletedAt) {
		t.Errorf("completed_at not preserved: %v", recs[0].CompletedAt)
	}

	none, err := p.GetCompletionsForDate(userID, "2026-05-31")
	if err != nil || len(none) != 0 {
		t.Errorf("expected no completions, got %v, %v", none, err)
	}
}

func testPerfectDayOnce(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	SeedProfile(t, p, userID)
	date := "2026-06-03"

	out, err := p.RecordCompletion(Completion(userID, "a", date, 10, 25))
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if !out.PerfectDayAwarded || out.TotalPoints != 35 {
		t.Errorf("expected perfect-day bonus, got %+v", out)
	}

	// A second completion on the same date claiming the bonus earns only its own points.
	out, err = p.RecordCompletion(Completion(userID, "b", date, 10, 25))
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if out.PerfectDayAwarded || out.TotalPoints != 45 {
		t.Errorf("bonus awarded twice: %+v", out)
	}

	// A duplicate never awards the bonus.
	out, err = p.RecordCompletion(Completion(userID, "a", "2026-06-04", 10, 0))
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	out, err = p.RecordCompletion(Completion(userID, "a", "2026-06-04", 10, 25))
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if out.Created || out.PerfectDayAwarded || out.TotalPoints != 55 {
		t.Errorf("duplicate earned a bonus: %+v", out)
	}
}

func testCompletionDates(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	SeedProfile(t, p, userID)

	for i, date := range []string{"2026-06-05", "2026-06-03", "2026-06-05", "2026-06-10"} {
		if _, err := p.RecordCompletion(Completion(userID, fmt.Sprintf("t-%d", i), date, 5, 0)); err != nil {
			t.Fatalf("RecordCompletion failed: %v", err)
		}
	}

	dates, err := p.GetCompletionDates(userID, "2026-06-01", "2026-06-09")
	if err != nil {
		t.Fatalf("GetCompletionDates failed: %v", err)
	}
	want := []string{"2026-06-03", "2026-06-05"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("expected %v, got %v", want, dates)
		}
	}
}

func testUnknownProfile(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)
	_, err := p.RecordCompletion(Completion(userID, "a", "2026-06-01", 10, 0))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	recs, err := p.GetCompletionsForDate(userID, "2026-06-01")
	if err != nil {
		t.Fatalf("GetCompletionsForDate failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("failed completion left a record behind: %+v", recs)
	}
}

func testChallenges(t *testing.T, p storage.Provider) {
	userID := NewUserID(t)

	if _, err := p.LoadChallenge(userID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}

	task := models.Task{
		ID: "day-1-task-0", Time: "06:00", Category: models.CategoryMind, TimeSlot: models.SlotMorning,
		Title: "Practice 5 minutes of morning breathing", Points: 15, Icon: "🌅",
	}
	ch := models.Challenge{
		Challenges:      []models.DayPlan{models.NewDayPlan(1, "2026-06-01", []models.Task{task})},
		TotalDays:       30,
		EstimatedPoints: 15,
		FocusAreas:      []string{"Morning Routine"},
		StartDate:       "2026-06-01",
		Strategy:        "default",
	}
	if err := p.SaveChallenge(userID, ch); err != nil {
		t.Fatalf("SaveChallenge failed: %v", err)
	}

	got, err := p.LoadChallenge(userID)
	if err != nil {
		t.Fatalf("LoadChallenge failed: %v", err)
	}
	if len(got.Challenges) != 1 || got.Challenges[0].Tasks[0] != task {
		t.Errorf("challenge not preserved: %+v", got)
	}
	if got.FocusAreas[0] != "Morning Routine" || got.EstimatedPoints != 15 {
		t.Errorf("challenge metadata not preserved: %+v", got)
	}
}

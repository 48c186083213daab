package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage/sqlite"
	"github.com/julianstephens/wellpath/internal/tracker"
)

const testSurvey = `display_name: Asha
wake_time: early
sleep_time: late
diet_type: vegan
meals_per_day: "3"
allergies: [none]
processed_food_frequency: often
sleep_duration: 5-6
sleep_quality: poor
health_conditions: [stress]
fitness_goals: [strength, flexibility]
relaxation_methods: [yoga]
stress_frequency: often
eco_habits: [recycling]
eco_interest_level: high
`

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	var out bytes.Buffer
	ctx := &Context{
		Store:    store,
		UserID:   "local",
		Strategy: engine.DefaultStrategy(),
		Out:      &out,
		Now:      func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) },
	}
	return ctx, &out
}

func writeSurvey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.yaml")
	if err := os.WriteFile(path, []byte(testSurvey), 0600); err != nil {
		t.Fatalf("failed to write survey: %v", err)
	}
	return path
}

func onboardTestUser(t *testing.T, ctx *Context) {
	t.Helper()
	cmd := &OnboardCmd{From: writeSurvey(t)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("disk full"), "Error: disk full"},
		{"past last day", fmt.Errorf("advance: %w", &engine.InvalidDayIndexError{Day: 31}), "Error: no more days in this challenge"},
		{"before first day", &engine.InvalidDayIndexError{Day: 0}, "Error: challenge not yet started"},
		{"unknown task", fmt.Errorf("complete: %w", &tracker.UnknownTaskError{TaskID: "secret-id"}), "Error: unable to complete this task"},
		{"incomplete profile", &engine.ProfileIncompleteError{Field: "current_day"}, "Error: please finish onboarding before starting the challenge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "wellpath.db")
	store := sqlite.NewStore(dbPath)
	defer store.Close()
	var out bytes.Buffer
	ctx := &Context{Store: store, Out: &out}

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file was not created: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("expected delete notice, got %q", out.String())
	}
}

func TestOnboardCmd_FromFile(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)

	profile, err := ctx.Store.GetProfile("local")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !profile.OnboardingCompleted || profile.CurrentDay != 1 || profile.ChallengeStartDate != "2026-06-01" {
		t.Errorf("unexpected profile progress: %+v", profile)
	}
	if len(profile.Allergies) != 0 || profile.MealsPerDay != 3 || profile.DisplayName != "Asha" {
		t.Errorf("survey not applied: %+v", profile)
	}

	ch, err := ctx.Store.LoadChallenge("local")
	if err != nil {
		t.Fatalf("LoadChallenge failed: %v", err)
	}
	if ch.TotalDays != 30 || len(ch.Challenges) != 30 {
		t.Errorf("challenge has %d days", len(ch.Challenges))
	}
	// Every default rule fires for this survey.
	if len(ch.FocusAreas) != 6 {
		t.Errorf("FocusAreas = %v", ch.FocusAreas)
	}
	if !strings.Contains(out.String(), "Welcome, Asha!") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestOnboardCmd_AlreadyOnboarded(t *testing.T) {
	ctx, _ := setupTestContext(t)
	onboardTestUser(t, ctx)

	if _, err := ctx.Store.RecordCompletion(models.CompletionWrite{Record: models.CompletionRecord{
		ID: "r1", UserID: "local", TaskID: "night-detox-1", Date: "2026-06-01", PointsEarned: 20,
	}}); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	again := &OnboardCmd{From: writeSurvey(t)}
	if err := again.Run(ctx); err == nil {
		t.Fatal("expected error when onboarding twice without --force")
	}

	restart := &OnboardCmd{From: writeSurvey(t), Start: "2026-07-01", Force: true}
	if err := restart.Run(ctx); err != nil {
		t.Fatalf("forced onboard failed: %v", err)
	}
	profile, _ := ctx.Store.GetProfile("local")
	if profile.ChallengeStartDate != "2026-07-01" || profile.CurrentDay != 1 {
		t.Errorf("challenge not restarted: %+v", profile)
	}
	if profile.TotalPoints != 20 {
		t.Errorf("restart lost points: %d", profile.TotalPoints)
	}
}

func TestOnboardCmd_InvalidInput(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&OnboardCmd{From: writeSurvey(t), Start: "June 1st"}).Run(ctx); err == nil {
		t.Error("expected error for malformed start date")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("wake_time: noon\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&OnboardCmd{From: bad}).Run(ctx); err == nil || !strings.Contains(err.Error(), "wake_time") {
		t.Errorf("expected wake_time validation error, got %v", err)
	}
}

func TestSurveyAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers SurveyAnswers
		wantErr string
	}{
		{"empty is allowed", SurveyAnswers{}, ""},
		{"valid", SurveyAnswers{WakeTime: "late", FitnessGoals: []string{"eco"}}, ""},
		{"bad single", SurveyAnswers{SleepQuality: "great"}, "sleep_quality"},
		{"bad multi", SurveyAnswers{EcoHabits: []string{"recycling", "composting"}}, "eco_habits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.answers.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}

	p := SurveyAnswers{
		MealsPerDay:      "4+",
		HealthConditions: []string{"none"},
		EcoHabits:        []string{"none", "transport"},
	}.Apply(models.Profile{UserID: "u", TotalPoints: 40, CurrentDay: 7})
	if p.MealsPerDay != 4 || len(p.HealthConditions) != 0 || len(p.EcoHabits) != 1 {
		t.Errorf("Apply() = %+v", p)
	}
	if p.TotalPoints != 40 || p.CurrentDay != 7 {
		t.Error("Apply() touched progress fields")
	}
}

func TestTodayCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)
	out.Reset()

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Day 1 of 30", "MORNING", "NIGHT", "night-detox-1", "(60 min)", "CHALLENGE", "day-1-task-0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTodayCmd_Preview(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)

	out.Reset()
	if err := (&TodayCmd{Tomorrow: true, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	var sched models.DaySchedule
	if err := json.Unmarshal(out.Bytes(), &sched); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sched.Day != 2 {
		t.Errorf("preview day = %d, want 2", sched.Day)
	}

	if err := (&TodayCmd{Day: 31}).Run(ctx); !errors.Is(err, engine.ErrInvalidDayIndex) {
		t.Errorf("expected ErrInvalidDayIndex, got %v", err)
	}
}

func TestCompleteCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)
	out.Reset()

	if err := (&CompleteCmd{TaskID: "night-detox-1"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed night-detox-1") {
		t.Errorf("unexpected output %q", out.String())
	}
	first, _ := ctx.Store.GetProfile("local")

	out.Reset()
	if err := (&CompleteCmd{TaskID: "night-detox-1"}).Run(ctx); err != nil {
		t.Fatalf("repeat complete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Already completed") {
		t.Errorf("unexpected output %q", out.String())
	}
	second, _ := ctx.Store.GetProfile("local")
	if first.TotalPoints != second.TotalPoints || first.TotalPoints == 0 {
		t.Errorf("points changed on repeat: %d then %d", first.TotalPoints, second.TotalPoints)
	}

	// Challenge ids complete through the same command.
	if err := (&CompleteCmd{TaskID: "day-1-task-0"}).Run(ctx); err != nil {
		t.Errorf("completing challenge task failed: %v", err)
	}

	err := (&CompleteCmd{TaskID: "day-9-task-0"}).Run(ctx)
	if !errors.Is(err, tracker.ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
}

func TestAdvanceCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)
	out.Reset()

	if err := (&AdvanceCmd{}).Run(ctx); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !strings.Contains(out.String(), "Advanced to day 2 of 30") {
		t.Errorf("unexpected output %q", out.String())
	}

	day := 30
	if err := ctx.Store.UpdateProfile("local", models.ProfilePatch{CurrentDay: &day}); err != nil {
		t.Fatal(err)
	}
	err := (&AdvanceCmd{}).Run(ctx)
	if FormatError(err) != "Error: no more days in this challenge" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestProgressCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)
	if err := (&CompleteCmd{TaskID: "night-detox-1"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	out.Reset()
	if err := (&ProgressCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	var sum tracker.Summary
	if err := json.Unmarshal(out.Bytes(), &sum); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sum.Day != 1 || sum.Streak != 1 || sum.Progress.Completed != 1 || sum.StreakBonus != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}

	out.Reset()
	if err := (&ProgressCmd{}).Run(ctx); err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if !strings.Contains(out.String(), "Streak:  1 day(s)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestChallengeShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	onboardTestUser(t, ctx)

	out.Reset()
	if err := (&ChallengeShowCmd{Day: 15, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("challenge show failed: %v", err)
	}
	var plan models.DayPlan
	if err := json.Unmarshal(out.Bytes(), &plan); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if plan.Day != 15 || plan.Date != "2026-06-15" {
		t.Errorf("unexpected plan %d on %s", plan.Day, plan.Date)
	}

	out.Reset()
	if err := (&ChallengeShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("challenge show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Challenge day 1 of 30") {
		t.Errorf("unexpected output %q", out.String())
	}

	for _, day := range []int{-1, 31} {
		if err := (&ChallengeShowCmd{Day: day}).Run(ctx); !errors.Is(err, engine.ErrInvalidDayIndex) {
			t.Errorf("day %d: expected ErrInvalidDayIndex, got %v", day, err)
		}
	}
}

func TestCommandsRequireOnboarding(t *testing.T) {
	ctx, _ := setupTestContext(t)
	cmds := map[string]interface{ Run(*Context) error }{
		"today":    &TodayCmd{},
		"complete": &CompleteCmd{TaskID: "night-detox-1"},
		"advance":  &AdvanceCmd{},
		"progress": &ProgressCmd{},
		"show":     &ChallengeShowCmd{},
	}
	for name, cmd := range cmds {
		if err := cmd.Run(ctx); err == nil || !strings.Contains(err.Error(), "wellpath onboard") {
			t.Errorf("%s: expected onboarding hint, got %v", name, err)
		}
	}
}

func TestConfigTimezoneCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ConfigTimezoneCmd{Timezone: "Mars/Olympus"}).Run(ctx); err == nil {
		t.Error("expected error for invalid timezone")
	}
	if err := (&ConfigTimezoneCmd{Timezone: "Asia/Kolkata"}).Run(ctx); err != nil {
		t.Fatalf("set timezone failed: %v", err)
	}
	out.Reset()
	if err := (&ConfigTimezoneCmd{}).Run(ctx); err != nil {
		t.Fatalf("show timezone failed: %v", err)
	}
	if !strings.Contains(out.String(), "Asia/Kolkata") {
		t.Errorf("unexpected output %q", out.String())
	}

	// 20:00 UTC is already the next day in Kolkata.
	ctx.Now = func() time.Time { return time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC) }
	today, err := ctx.Today()
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if today != "2026-06-02" {
		t.Errorf("Today() = %s, want 2026-06-02", today)
	}
}

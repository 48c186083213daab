package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/storage/storagetest"
)

const testDate = "2026-06-01"

func newTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "wellpath.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func newTestSession(t *testing.T, store storage.Provider, userID string, tasks []models.Task) *Session {
	t.Helper()
	n := 0
	sess, err := NewSession(store, userID, testDate, tasks,
		WithClock(func() time.Time { return time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { n++; return "rec-" + string(rune('a'+n-1)) }),
	)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return sess
}

func totalPoints(t *testing.T, store storage.Provider, userID string) int {
	t.Helper()
	p, err := store.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	return p.TotalPoints
}

func TestNewSession_RequiresUser(t *testing.T) {
	store := newTestStore(t)
	if _, err := NewSession(store, "", testDate, testTasks()); !errors.Is(err, engine.ErrProfileIncomplete) {
		t.Errorf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestNewSession_LoadsExistingCompletions(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	if _, err := store.RecordCompletion(storagetest.Completion(userID, "night-detox-1", testDate, 20, 0)); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	sess := newTestSession(t, store, userID, testTasks())
	if !sess.Completed("night-detox-1") {
		t.Error("expected stored completion to be loaded")
	}
	if got := sess.Progress(); got.Completed != 1 || got.Points != 20 {
		t.Errorf("Progress() = %+v", got)
	}
}

func TestCompleteTask(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	sess := newTestSession(t, store, userID, testTasks())

	res, err := sess.CompleteTask("afternoon-meal-1")
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !res.Created || res.PerfectDayAwarded {
		t.Errorf("unexpected result flags: %+v", res)
	}
	if res.Record.ID != "rec-a" || res.Record.PointsEarned != 15 || res.Record.Date != testDate {
		t.Errorf("unexpected record: %+v", res.Record)
	}
	if !res.Record.CompletedAt.Equal(time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("CompletedAt = %v", res.Record.CompletedAt)
	}
	if res.TotalPoints != 15 || totalPoints(t, store, userID) != 15 {
		t.Errorf("TotalPoints = %d, stored %d, want 15", res.TotalPoints, totalPoints(t, store, userID))
	}
	if res.Progress.Completed != 1 || res.Progress.Percentage != 33 {
		t.Errorf("Progress = %+v", res.Progress)
	}
}

func TestCompleteTask_Idempotent(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	sess := newTestSession(t, store, userID, testTasks())

	first, err := sess.CompleteTask("morning-lemon-water-1")
	if err != nil {
		t.Fatalf("first CompleteTask failed: %v", err)
	}
	second, err := sess.CompleteTask("morning-lemon-water-1")
	if err != nil {
		t.Fatalf("second CompleteTask failed: %v", err)
	}

	if second.Created {
		t.Error("second completion should not create a record")
	}
	if second.Record.ID != first.Record.ID {
		t.Errorf("second completion returned %q, want existing %q", second.Record.ID, first.Record.ID)
	}
	if got := totalPoints(t, store, userID); got != 10 {
		t.Errorf("TotalPoints = %d after repeated completion, want 10", got)
	}

	// A fresh session for the same day sees the same state.
	again := newTestSession(t, store, userID, testTasks())
	res, err := again.CompleteTask("morning-lemon-water-1")
	if err != nil {
		t.Fatalf("CompleteTask in new session failed: %v", err)
	}
	if res.Created || res.TotalPoints != 10 {
		t.Errorf("retry from new session: %+v", res)
	}
}

func TestCompleteTask_UnknownTask(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	sess := newTestSession(t, store, userID, testTasks())

	_, err := sess.CompleteTask("day-1-task-0")
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
	var ute *UnknownTaskError
	if !errors.As(err, &ute) || ute.TaskID != "day-1-task-0" {
		t.Errorf("expected UnknownTaskError for the id, got %v", err)
	}
	if msg := ute.UserMessage(); msg != "unable to complete this task" {
		t.Errorf("UserMessage() = %q", msg)
	}

	records, err := store.GetCompletionsForDate(userID, testDate)
	if err != nil {
		t.Fatalf("GetCompletionsForDate failed: %v", err)
	}
	if len(records) != 0 || totalPoints(t, store, userID) != 0 {
		t.Errorf("unknown task mutated state: %d records, %d points", len(records), totalPoints(t, store, userID))
	}
}

func TestCompleteTask_PerfectDayBonusOnce(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	sess := newTestSession(t, store, userID, testTasks())

	var last CompletionResult
	for _, task := range testTasks() {
		res, err := sess.CompleteTask(task.ID)
		if err != nil {
			t.Fatalf("CompleteTask(%s) failed: %v", task.ID, err)
		}
		last = res
	}
	if !last.PerfectDayAwarded {
		t.Error("expected perfect day bonus on the last task")
	}
	if !last.Progress.Perfect() {
		t.Errorf("expected a perfect day, got %+v", last.Progress)
	}
	if want := 45 + 25; last.TotalPoints != want || totalPoints(t, store, userID) != want {
		t.Errorf("TotalPoints = %d, want %d", last.TotalPoints, want)
	}

	// Replaying the finishing completion must not award the bonus again.
	res, err := sess.CompleteTask("night-detox-1")
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if res.PerfectDayAwarded || res.Created {
		t.Errorf("replay changed state: %+v", res)
	}
	if got := totalPoints(t, store, userID); got != 70 {
		t.Errorf("TotalPoints after replay = %d, want 70", got)
	}
}

type failingStore struct {
	storage.Provider
}

func (failingStore) RecordCompletion(models.CompletionWrite) (models.CompletionOutcome, error) {
	return models.CompletionOutcome{}, errors.New("disk full")
}

func TestCompleteTask_StorageFailure(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, store, userID)
	sess := newTestSession(t, failingStore{store}, userID, testTasks())

	if _, err := sess.CompleteTask("night-detox-1"); err == nil {
		t.Fatal("expected storage error")
	}
	if sess.Completed("night-detox-1") {
		t.Error("failed completion was marked done")
	}
	if got := totalPoints(t, store, userID); got != 0 {
		t.Errorf("TotalPoints = %d, want 0", got)
	}
}

func TestCompleteTask_SynthesizedDay(t *testing.T) {
	store := newTestStore(t)
	userID := storagetest.NewUserID(t)
	profile := storagetest.SeedProfile(t, store, userID)

	sched, err := engine.NewSynthesizer().SynthesizeToday(profile, nil)
	if err != nil {
		t.Fatalf("SynthesizeToday failed: %v", err)
	}
	sess := newTestSession(t, store, userID, sched.Tasks())
	for _, task := range sched.Tasks() {
		if _, err := sess.CompleteTask(task.ID); err != nil {
			t.Fatalf("CompleteTask(%s) failed: %v", task.ID, err)
		}
	}

	want := sched.TotalPoints() + 25
	if got := totalPoints(t, store, userID); got != want {
		t.Errorf("TotalPoints = %d, want %d", got, want)
	}
}

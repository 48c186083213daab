package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/storage/storagetest"
	"github.com/julianstephens/wellpath/internal/tracker"
	"github.com/julianstephens/wellpath/internal/tui/components/tasklist"
)

func setupTestModel(t *testing.T) (Model, *storage.JSONStore, string) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "wellpath.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	userID := storagetest.NewUserID(t)
	profile := storagetest.SeedProfile(t, store, userID)

	day, err := tracker.OpenDay(store, engine.NewSynthesizer(), profile, "2026-06-01")
	if err != nil {
		t.Fatalf("OpenDay failed: %v", err)
	}

	m := NewModel(day)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), store, userID
}

// press sends a key and runs any command it returns back through Update.
func press(m Model, msg tea.KeyMsg) Model {
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd != nil {
		if next := cmd(); next != nil {
			if _, isQuit := next.(tea.QuitMsg); !isQuit {
				updated, _ = m.Update(next)
				m = updated.(Model)
			}
		}
	}
	return m
}

func TestModel_TabCycles(t *testing.T) {
	m, _, _ := setupTestModel(t)

	want := []SessionState{StateChallenge, StateProgress, StateToday}
	for _, s := range want {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != s {
			t.Fatalf("state = %d, want %d", m.state, s)
		}
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateProgress {
		t.Errorf("shift+tab: state = %d, want %d", m.state, StateProgress)
	}
}

func TestModel_CompleteSelectedTask(t *testing.T) {
	m, store, userID := setupTestModel(t)

	first := m.day.Schedule.All()[0]
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.statusIsError {
		t.Fatalf("unexpected error status: %s", m.status)
	}
	if !m.day.Session.Completed(first.ID) {
		t.Fatalf("expected %s to be completed", first.ID)
	}
	profile, err := store.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.TotalPoints != first.Points {
		t.Errorf("TotalPoints = %d, want %d", profile.TotalPoints, first.Points)
	}
	if !strings.Contains(m.View(), "[x]") {
		t.Error("completed task not shown as checked")
	}

	// Completing the same row again is ignored by the list.
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	profile, _ = store.GetProfile(userID)
	if profile.TotalPoints != first.Points {
		t.Errorf("TotalPoints after repeat = %d, want %d", profile.TotalPoints, first.Points)
	}
}

func TestModel_UnknownTaskStatus(t *testing.T) {
	m, _, _ := setupTestModel(t)

	updated, _ := m.Update(tasklist.CompleteTaskMsg{ID: "no-such-task"})
	m = updated.(Model)
	if !m.statusIsError || m.status != "unable to complete this task" {
		t.Errorf("status = %q (error=%v)", m.status, m.statusIsError)
	}
}

func TestModel_ViewShowsTabsAndDay(t *testing.T) {
	m, _, _ := setupTestModel(t)
	view := m.View()
	for _, want := range []string{"Today", "Challenge", "Progress", "Day 1/30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || m.View() != "" {
		t.Error("expected quitting model to render nothing")
	}
}

package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/storage/storagetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "wellpath.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, setupTestStore(t))
}

func TestLoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellpath.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, first, userID)
	first.Close()

	second := NewStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer second.Close()
	if _, err := second.GetProfile(userID); err != nil {
		t.Errorf("profile lost across Init: %v", err)
	}

	third := NewStore(path)
	if err := third.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer third.Close()
	if _, err := third.GetProfile(userID); err != nil {
		t.Errorf("profile not visible after Load: %v", err)
	}
}

func TestCompletionsAreUniquePerTaskAndDate(t *testing.T) {
	s := setupTestStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, s, userID)

	_, err := s.GetDB().Exec(`INSERT INTO completions (id, user_id, task_id, date, points_earned, completed_at)
		VALUES ('x1', ?, 'a', '2026-06-01', 1, '2026-06-01T00:00:00Z'),
		       ('x2', ?, 'a', '2026-06-01', 1, '2026-06-01T00:00:00Z')`, userID, userID)
	if err == nil {
		t.Error("expected unique constraint violation")
	}
}

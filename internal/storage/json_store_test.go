package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/storage/storagetest"
)

func newJSONStore(t *testing.T) (*storage.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wellpath.json")
	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s, path
}

func TestJSONStore(t *testing.T) {
	s, _ := newJSONStore(t)
	storagetest.Run(t, s)
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestJSONStorePersistsAcrossLoads(t *testing.T) {
	s, path := newJSONStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, s, userID)
	if _, err := s.RecordCompletion(storagetest.Completion(userID, "night-detox-1", "2026-06-01", 25, 0)); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	prof, err := reopened.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if prof.TotalPoints != 25 {
		t.Errorf("expected 25 points after reload, got %d", prof.TotalPoints)
	}

	// Init on an existing file keeps its contents.
	again := storage.NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("Init on existing file failed: %v", err)
	}
	if _, err := again.GetProfile(userID); err != nil {
		t.Errorf("Init discarded existing data: %v", err)
	}
}

func TestJSONStoreFailedWriteLeavesState(t *testing.T) {
	s, path := newJSONStore(t)
	userID := storagetest.NewUserID(t)
	storagetest.SeedProfile(t, s, userID)

	dir := filepath.Dir(path)
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0700) })
	if os.Geteuid() == 0 {
		t.Skip("running as root; directory permissions are not enforced")
	}

	if _, err := s.RecordCompletion(storagetest.Completion(userID, "a", "2026-06-01", 10, 25)); err == nil {
		t.Fatal("expected write failure in read-only directory")
	}

	prof, err := s.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if prof.TotalPoints != 0 {
		t.Errorf("failed write changed in-memory points to %d", prof.TotalPoints)
	}
	recs, _ := s.GetCompletionsForDate(userID, "2026-06-01")
	if len(recs) != 0 {
		t.Errorf("failed write left %d in-memory records", len(recs))
	}
}

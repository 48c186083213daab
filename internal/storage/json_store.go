package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
)

// Store is the on-disk layout of a JSON store file.
type Store struct {
	Version     int                         `json:"version"`
	Settings    models.Settings             `json:"settings"`
	Profiles    map[string]models.Profile   `json:"profiles"`
	Completions []models.CompletionRecord   `json:"completions"`
	PerfectDays map[string]map[string]int   `json:"perfect_days"` // user -> date -> bonus
	Challenges  map[string]models.Challenge `json:"challenges"`
}

func newStore() *Store {
	return &Store{
		Version:     1,
		Settings:    models.Settings{Timezone: constants.DefaultTimezone},
		Profiles:    make(map[string]models.Profile),
		PerfectDays: make(map[string]map[string]int),
		Challenges:  make(map[string]models.Challenge),
	}
}

func (st *Store) ensureMaps() {
	if st.Profiles == nil {
		st.Profiles = make(map[string]models.Profile)
	}
	if st.PerfectDays == nil {
		st.PerfectDays = make(map[string]map[string]int)
	}
	if st.Challenges == nil {
		st.Challenges = make(map[string]models.Challenge)
	}
}

// errDuplicate aborts a mutation without writing when the completion already exists.
var errDuplicate = errors.New("completion already recorded")

// JSONStore keeps all state in a single JSON file. Every write replaces the
// file through a temp file and rename, so a failed write leaves the previous
// state on disk and in memory.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	next := newStore()
	if err := s.write(next); err != nil {
		return err
	}
	s.store = next
	return nil
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	st := &Store{}
	if err := json.Unmarshal(data, st); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	st.ensureMaps()
	s.store = st
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) write(st *Store) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the current state and commits the copy only
// if fn succeeds and the file is written.
func (s *JSONStore) mutate(fn func(st *Store) error) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, err := json.Marshal(s.store)
	if err != nil {
		return fmt.Errorf("failed to snapshot storage: %w", err)
	}
	next := &Store{}
	if err := json.Unmarshal(raw, next); err != nil {
		return fmt.Errorf("failed to snapshot storage: %w", err)
	}
	next.ensureMaps()

	if err := fn(next); err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.store = next
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(st *Store) error {
		st.Settings = settings
		return nil
	})
}

func (s *JSONStore) GetProfile(userID string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}
	p, ok := s.store.Profiles[userID]
	if !ok {
		return models.Profile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return p, nil
}

func (s *JSONStore) SaveProfile(p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(st *Store) error {
		st.Profiles[p.UserID] = p
		return nil
	})
}

func (s *JSONStore) UpdateProfile(userID string, patch models.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(st *Store) error {
		p, ok := st.Profiles[userID]
		if !ok {
			return fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		if patch.CurrentDay != nil {
			p.CurrentDay = *patch.CurrentDay
		}
		if patch.TotalPoints != nil {
			p.TotalPoints = *patch.TotalPoints
		}
		st.Profiles[userID] = p
		return nil
	})
}

func (s *JSONStore) GetCompletionsForDate(userID, date string) ([]models.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	records := []models.CompletionRecord{}
	for _, r := range s.store.Completions {
		if r.UserID == userID && r.Date == date {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *JSONStore) GetCompletionDates(userID, since, until string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	seen := make(map[string]bool)
	dates := []string{}
	for _, r := range s.store.Completions {
		if r.UserID != userID || r.Date < since || r.Date > until || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		dates = append(dates, r.Date)
	}
	slices.Sort(dates)
	return dates, nil
}

func (s *JSONStore) RecordCompletion(w models.CompletionWrite) (models.CompletionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := w.Record
	var out models.CompletionOutcome
	err := s.mutate(func(st *Store) error {
		p, ok := st.Profiles[rec.UserID]
		if !ok {
			return fmt.Errorf("profile %s: %w", rec.UserID, ErrNotFound)
		}

		for _, existing := range st.Completions {
			if existing.UserID == rec.UserID && existing.TaskID == rec.TaskID && existing.Date == rec.Date {
				out = models.CompletionOutcome{Record: existing, TotalPoints: p.TotalPoints}
				return errDuplicate
			}
		}

		st.Completions = append(st.Completions, rec)
		p.TotalPoints += rec.PointsEarned

		awarded := false
		if w.PerfectDayBonus > 0 {
			days := st.PerfectDays[rec.UserID]
			if days == nil {
				days = make(map[string]int)
				st.PerfectDays[rec.UserID] = days
			}
			if _, done := days[rec.Date]; !done {
				days[rec.Date] = w.PerfectDayBonus
				p.TotalPoints += w.PerfectDayBonus
				awarded = true
			}
		}

		st.Profiles[rec.UserID] = p
		out = models.CompletionOutcome{Record: rec, Created: true, PerfectDayAwarded: awarded, TotalPoints: p.TotalPoints}
		return nil
	})
	if errors.Is(err, errDuplicate) {
		logger.Debug("Completion already recorded", "user", rec.UserID, "task", rec.TaskID, "date", rec.Date)
		return out, nil
	}
	if err != nil {
		return models.CompletionOutcome{}, err
	}
	return out, nil
}

func (s *JSONStore) SaveChallenge(userID string, ch models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(st *Store) error {
		st.Challenges[userID] = ch
		return nil
	})
}

func (s *JSONStore) LoadChallenge(userID string) (models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Challenge{}, fmt.Errorf("storage not loaded")
	}
	ch, ok := s.store.Challenges[userID]
	if !ok {
		return models.Challenge{}, fmt.Errorf("challenge for %s: %w", userID, ErrNotFound)
	}
	return ch, nil
}

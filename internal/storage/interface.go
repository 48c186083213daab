package storage

import (
	"errors"

	"github.com/julianstephens/wellpath/internal/models"
)

var (
	// ErrNotFound is returned when a profile, challenge or settings row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the backing store has never been created.
	ErrNotInitialized = errors.New("storage not initialized, run 'wellpath init' first")
)

// Provider is the persistence collaborator of the challenge engine.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error
	// UpdateProfile applies only the non-nil fields of patch.
	UpdateProfile(userID string, patch models.ProfilePatch) error

	// Completions
	GetCompletionsForDate(userID, date string) ([]models.CompletionRecord, error)
	// GetCompletionDates returns the distinct dates in [since, until] with at
	// least one completion, oldest first.
	GetCompletionDates(userID, since, until string) ([]string, error)
	// RecordCompletion stores the record, adds its points to the profile total
	// and, when PerfectDayBonus is set, awards the bonus at most once per
	// (user, date). Either every write lands or none does. A repeated
	// (user, task, date) returns the stored record with Created false and
	// changes nothing.
	RecordCompletion(models.CompletionWrite) (models.CompletionOutcome, error)

	// Challenges
	SaveChallenge(userID string, ch models.Challenge) error
	LoadChallenge(userID string) (models.Challenge, error)

	// Utils
	GetConfigPath() string
}

package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/wellpath/internal/logger"
)

const (
	// DefaultRetention is how many snapshots are kept after each new one.
	DefaultRetention = 14
	// DirName is the snapshot directory next to the database.
	DirName = "backups"

	filePrefix = "wellpath-"
	fileSuffix = ".db"
	stampFmt   = "20060102-150405"
)

// Reasons recorded in snapshot filenames.
const (
	ReasonManual     = "manual"
	ReasonInit       = "init"
	ReasonOnboard    = "onboard"
	ReasonPreRestore = "pre-restore"
)

// ErrNoDatabase is returned when there is nothing to snapshot yet.
var ErrNoDatabase = errors.New("database does not exist")

// Snapshot describes one backup file.
type Snapshot struct {
	Path   string
	Taken  time.Time
	Reason string
	Size   int64
}

// Name is the snapshot's file name.
func (s Snapshot) Name() string {
	return filepath.Base(s.Path)
}

// Manager takes, lists and restores snapshots of a SQLite challenge database.
type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

type Option func(*Manager)

// WithRetention sets how many snapshots survive pruning.
func WithRetention(n int) Option {
	return func(m *Manager) { m.keep = n }
}

// WithClock replaces time.Now for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(dbPath string, opts ...Option) *Manager {
	m := &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		keep:   DefaultRetention,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the database and prunes snapshots past the retention limit.
func (m *Manager) Create(reason string) (Snapshot, error) {
	snap, err := m.create(reason)
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to prune old snapshots", "error", err)
	}
	return snap, nil
}

func (m *Manager) create(reason string) (Snapshot, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create backup directory: %w", err)
	}
	if reason == "" {
		reason = ReasonManual
	}

	taken := m.now().UTC().Truncate(time.Second)
	path, err := m.uniquePath(taken, reason)
	if err != nil {
		return Snapshot{}, err
	}
	if err := vacuumInto(m.dbPath, path); err != nil {
		return Snapshot{}, fmt.Errorf("failed to back up database: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Info("Snapshot created", "path", path, "reason", reason)
	return Snapshot{Path: path, Taken: taken, Reason: reason, Size: info.Size()}, nil
}

func (m *Manager) uniquePath(taken time.Time, reason string) (string, error) {
	base := filePrefix + taken.Format(stampFmt) + "-" + reason
	path := filepath.Join(m.dir, base+fileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", errors.New("failed to generate unique snapshot filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s.%d%s", base, n, fileSuffix))
	}
}

// vacuumInto writes a compacted copy of src to dst.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := checkDatabase(db); err != nil {
		return err
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

// parseName reads the timestamp and reason out of a snapshot file name.
func parseName(name string) (time.Time, string, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, "", false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(rest) < len(stampFmt) {
		return time.Time{}, "", false
	}
	taken, err := time.Parse(stampFmt, rest[:len(stampFmt)])
	if err != nil {
		return time.Time{}, "", false
	}
	reason := strings.TrimPrefix(rest[len(stampFmt):], "-")
	if i := strings.LastIndex(reason, "."); i != -1 {
		reason = reason[:i]
	}
	return taken, reason, true
}

// List returns snapshots newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	snaps := []Snapshot{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		taken, reason, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Path:   filepath.Join(m.dir, entry.Name()),
			Taken:  taken,
			Reason: reason,
			Size:   info.Size(),
		})
	}

	slices.SortStableFunc(snaps, func(a, b Snapshot) int {
		if c := b.Taken.Compare(a.Taken); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return snaps, nil
}

// Resolve finds a snapshot by path or file name.
func (m *Manager) Resolve(ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	path := filepath.Join(m.dir, filepath.Base(ref))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("snapshot not found: %s", ref)
	}
	return path, nil
}

func (m *Manager) prune() error {
	if m.keep <= 0 {
		return nil
	}
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for _, s := range snaps[min(m.keep, len(snaps)):] {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", s.Path, err)
		}
		logger.Debug("Pruned snapshot", "path", s.Path)
	}
	return nil
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first and that snapshot is returned. The
// database must be closed by the caller.
func (m *Manager) Restore(path string) (Snapshot, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Snapshot{}, fmt.Errorf("snapshot does not exist: %s", path)
	}
	if err := verify(path); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot is corrupted or not a wellpath database: %w", err)
	}

	var safety Snapshot
	if _, err := os.Stat(m.dbPath); err == nil {
		// Not pruned so the snapshot being restored cannot be rotated away.
		s, err := m.create(ReasonPreRestore)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to snapshot current database before restore: %w", err)
		}
		safety = s
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return Snapshot{}, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return Snapshot{}, fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Snapshot restored", "path", path, "db", m.dbPath)
	return safety, nil
}

func checkDatabase(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("database appears to be corrupted: %w", err)
	}
	return nil
}

// verify checks that path is a SQLite database with the wellpath tables.
func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkDatabase(db); err != nil {
		return err
	}
	var n int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('profiles', 'completions', 'challenges')",
	).Scan(&n)
	if err != nil {
		return err
	}
	if n != 3 {
		return errors.New("missing challenge tables")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

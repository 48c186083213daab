package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellpath/internal/backup"
	"github.com/julianstephens/wellpath/internal/storage/sqlite"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.backups()
	if err != nil {
		return err
	}
	snap, err := mgr.Create(backup.ReasonManual)
	if err != nil {
		return err
	}
	ctx.printf("Snapshot saved: %s\n", snap.Path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.backups()
	if err != nil {
		return err
	}
	snaps, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		ctx.printf("No snapshots in %s\n", mgr.Dir())
		return nil
	}
	for _, s := range snaps {
		ctx.printf("%s  %-11s  %6.1f KB  %s\n",
			s.Taken.Local().Format("2006-01-02 15:04:05"), s.Reason, float64(s.Size)/1024, s.Name())
	}
	return nil
}

type BackupRestoreCmd struct {
	Snapshot string `arg:"" help:"Snapshot file name or path (see 'wellpath backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.backups()
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.Snapshot)
	if err != nil {
		return err
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	safety, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if safety.Path != "" {
		ctx.printf("Previous database saved as %s\n", safety.Name())
	}
	ctx.printf("Restored %s\n", path)
	return nil
}

func (c *Context) backups() (*backup.Manager, error) {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return nil, errors.New("snapshots are only supported for SQLite storage")
	}
	return backup.NewManager(store.GetConfigPath(), backup.WithClock(c.now)), nil
}

// snapshotBefore takes a snapshot before a destructive command. Stores
// other than SQLite and missing databases are skipped.
func (c *Context) snapshotBefore(reason string) error {
	mgr, err := c.backups()
	if err != nil {
		return nil
	}
	snap, err := mgr.Create(reason)
	if errors.Is(err, backup.ErrNoDatabase) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	c.printf("Snapshot saved: %s\n", snap.Name())
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/wellpath/internal/backup"
	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if path == postgres.ConfigPath {
			return fmt.Errorf("--force is not supported for PostgreSQL; drop the %s schema manually", constants.AppName)
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.snapshotBefore(backup.ReasonInit); err != nil {
				return err
			}
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			logger.Info("Deleted existing database", "path", path)
			ctx.printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized wellpath storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/keyring"
	"github.com/julianstephens/wellpath/internal/storage/postgres"
	"github.com/julianstephens/wellpath/internal/utils"
)

// ConfigSetConnectionCmd stores a PostgreSQL connection string in the OS keyring.
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.println("✓ Connection string stored in OS keyring")
	ctx.printf("  Use --config=%s to connect with it\n", postgres.ConfigPath)
	return nil
}

// ConfigShowConnectionCmd prints the stored connection string with the password masked.
type ConfigShowConnectionCmd struct{}

func (cmd *ConfigShowConnectionCmd) Run(ctx *Context) error {
	connStr, source, err := keyring.ResolveConnectionString()
	if err != nil {
		return err
	}
	ctx.printf("%s (from %s)\n", maskPassword(connStr), source)
	return nil
}

// ConfigClearConnectionCmd removes the connection string from the OS keyring.
type ConfigClearConnectionCmd struct{}

func (cmd *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.println("✓ Connection string deleted from OS keyring")
	return nil
}

// ConfigTimezoneCmd shows or sets the timezone used to decide what "today" is.
type ConfigTimezoneCmd struct {
	Timezone string `arg:"" optional:"" help:"IANA timezone name, or 'Local' for the system timezone."`
}

func (cmd *ConfigTimezoneCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if cmd.Timezone == "" {
		tz := settings.Timezone
		if tz == "" {
			tz = constants.DefaultTimezone
		}
		ctx.printf("Timezone: %s\n", tz)
		return nil
	}
	if !utils.ValidateTimezone(cmd.Timezone) {
		return fmt.Errorf("invalid timezone %q", cmd.Timezone)
	}
	settings.Timezone = cmd.Timezone
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.printf("Timezone set to %s\n", cmd.Timezone)
	return nil
}

// maskPassword hides the password in URL and key=value connection strings.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://")
		rest := connStr[idx+3:]
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if colon := strings.Index(userInfo, ":"); colon != -1 {
				return connStr[:idx+3] + userInfo[:colon] + ":****" + rest[at:]
			}
		}
		return connStr
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}

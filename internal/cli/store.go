package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/keyring"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/storage/postgres"
	"github.com/julianstephens/wellpath/internal/storage/sqlite"
)

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore picks the storage provider for config: "postgresql" reads the
// connection string from the keyring or environment, a PostgreSQL URL or DSN
// is used directly, a .json path selects the JSON file store and anything
// else is a SQLite database path.
func OpenStore(config string) (storage.Provider, error) {
	if config == postgres.ConfigPath {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNoConnection) {
				return nil, fmt.Errorf("no PostgreSQL connection configured; run 'wellpath config set-connection' or set %s", constants.EnvDBConnection)
			}
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection", "source", source)
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use the OS keyring ('wellpath config set-connection'), %s, or .pgpass: %w", constants.EnvDBConnection, err)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// LogDir returns the directory logs are written under for config.
func LogDir(config string) (string, error) {
	if config == postgres.ConfigPath || postgres.IsConnString(config) {
		return ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	}
	path, err := ExpandHome(config)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

package constants

const (
	AppName            = "wellpath"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/wellpath/wellpath.db"
	DefaultUserID      = "local"
	Version            = "v0.1.0"

	// EnvDBConnection names the environment variable holding a PostgreSQL connection string.
	EnvDBConnection = "WELLPATH_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)

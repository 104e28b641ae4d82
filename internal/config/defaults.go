package config

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// EnvFile names a dotenv file loaded before overrides are applied.
	EnvFile = "VIDEOCATALOG_ENV_FILE"

	EnvDBDriver = "VIDEOCATALOG_DB_DRIVER"
	EnvDBPath   = "VIDEOCATALOG_DB_PATH"
	EnvDBDSN    = "VIDEOCATALOG_DB_DSN"
	EnvLogLevel = "VIDEOCATALOG_LOG_LEVEL"
)

const (
	defaultConfigPath    = "~/.config/videocatalog/config.toml"
	defaultDataDir       = "~/.local/share/videocatalog"
	defaultLogDir        = "~/.local/share/videocatalog/logs"
	defaultDatabaseFile  = "catalog.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultBusyTimeoutMS = 5000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Database: Database{
			Driver:        DriverSQLite,
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the configuration file read from the working directory
	DefaultConfigFile = "cmdreg.yaml"

	// ConfigFileEnv names the environment variable overriding DefaultConfigFile
	ConfigFileEnv = "CMDREG_CONFIG"

	// DefaultPrompt is printed before each statement read by the interactive shell
	DefaultPrompt = "SQL> "

	// DriverSQLite selects the embedded SQLite database
	DriverSQLite = "sqlite"

	// DriverClickHouse selects a ClickHouse server
	DriverClickHouse = "clickhouse"

	// DefaultDSN is an in-memory SQLite database
	DefaultDSN = ":memory:"

	// DefaultClickHouseVersion is the server image tag used by the sandbox
	DefaultClickHouseVersion = "25.7"

	// ScriptsDir is the script library directory below the settings path
	ScriptsDir = "scripts"
)

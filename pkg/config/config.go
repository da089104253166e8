package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/clickhouse"
	"github.com/pseudomuto/cmdreg/pkg/consts"
	"github.com/pseudomuto/cmdreg/pkg/utils"
	"gopkg.in/yaml.v3"
)

type (
	// Database selects the database the shell executes SQL against.
	Database struct {
		// Driver is either sqlite (the default) or clickhouse
		Driver string `yaml:"driver,omitempty" env:"CMDREG_DATABASE_DRIVER"`

		// DSN is the driver specific data source name
		DSN string `yaml:"dsn,omitempty" env:"CMDREG_DATABASE_DSN"`

		// TLS configures mTLS for the clickhouse driver
		TLS clickhouse.TLS `yaml:"tls"`

		// Sandbox starts a throwaway ClickHouse container and connects to it,
		// ignoring Driver and DSN
		Sandbox Sandbox `yaml:"sandbox"`
	}

	// Sandbox configures the Docker hosted ClickHouse server.
	Sandbox struct {
		Enabled bool   `yaml:"enabled" env:"CMDREG_SANDBOX"`
		Version string `yaml:"version,omitempty" env:"CMDREG_SANDBOX_VERSION"`
	}

	// Scripts configures the hosted script library.
	Scripts struct {
		// Path is searched for scripts that are not found relative to the
		// working directory
		Path string `yaml:"path,omitempty" env:"CMDREG_SCRIPT_PATH"`
	}

	// Config represents the shell configuration.
	Config struct {
		Database Database `yaml:"database"`
		Scripts  Scripts  `yaml:"scripts"`

		// Startup statements run before the first prompt, typically registering
		// commands from the script library
		Startup []string `yaml:"startup" env:"CMDREG_STARTUP" envSeparator:";"`

		// Prompt is printed before each interactive statement
		Prompt string `yaml:"prompt,omitempty" env:"CMDREG_PROMPT"`
	}
)

// Default returns the configuration used when no file exists: an in-memory
// SQLite database, the per-user script library, and any environment overrides.
func Default() (*Config, error) {
	return LoadConfig(nil)
}

// LoadConfig parses a configuration from the provided io.Reader and applies
// environment overrides and defaults, in that order. A nil or empty reader
// yields the defaults.
//
// Environment variables (a .env file is honoured by Load):
//   - CMDREG_DATABASE_DRIVER, CMDREG_DATABASE_DSN
//   - CMDREG_TLS_CERT_FILE, CMDREG_TLS_KEY_FILE, CMDREG_TLS_CA_FILE
//   - CMDREG_SANDBOX, CMDREG_SANDBOX_VERSION
//   - CMDREG_SCRIPT_PATH
//   - CMDREG_STARTUP (statements separated by ';')
//   - CMDREG_PROMPT
//
// Example:
//
//	yamlData := `
//	database:
//	  driver: sqlite
//	  dsn: file:demo.db
//	startup:
//	  - script greet.lua -cmdReg hello -silent
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if r != nil {
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "failed to unmarshal config")
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = consts.DriverSQLite
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == consts.DriverSQLite {
		cfg.Database.DSN = consts.DefaultDSN
	}
	if cfg.Database.Sandbox.Version == "" {
		cfg.Database.Sandbox.Version = consts.DefaultClickHouseVersion
	}
	if cfg.Scripts.Path == "" {
		cfg.Scripts.Path = filepath.Join(utils.SettingsPath(), consts.ScriptsDir)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = consts.DefaultPrompt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Load reads an optional .env file from the working directory and then the
// configuration at path. A missing configuration file yields Default.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}

	return LoadConfigFile(path)
}

// Validate reports configuration values the shell cannot work with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case consts.DriverSQLite, consts.DriverClickHouse:
	default:
		return errors.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Database.DSN == "" && !c.Database.Sandbox.Enabled {
		return errors.Errorf("database.dsn is required for driver %s", c.Database.Driver)
	}

	return nil
}

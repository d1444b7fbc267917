// Package config loads feedprint's YAML configuration, applies environment
// overrides and exposes dotted-key access for the `config` CLI commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Defaults.
const (
	DefaultScenario        = "norway-2024"
	DefaultServerAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultFetchTimeout    = 15 * time.Second
	DefaultPrecision       = 0
	maxPrecision           = 6
)

// ErrUnknownKey indicates a dotted key that does not name a setting.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the complete feedprint configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Data    DataConfig    `yaml:"data"`
	Server  ServerConfig  `yaml:"server"`

	configPath string
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// DataConfig selects the reference dataset and scenario.
type DataConfig struct {
	// Source is "builtin", a file path or an http(s) URL.
	Source       string        `yaml:"source"`
	Scenario     string        `yaml:"scenario"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// ServerConfig configures `feedprint serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

//nolint:gochecknoglobals // Process-wide configuration, set once per CLI invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// Default returns a Config holding only built-in defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Source:       "builtin",
			Scenario:     DefaultScenario,
			FetchTimeout: DefaultFetchTimeout,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		configPath: filepath.Join(HomeDir(), "config.yaml"),
	}
}

// New returns the defaults overlaid with the config file (if present) and
// environment variables. A malformed config file is ignored in favour of
// defaults; use Load to surface the error.
func New() *Config {
	cfg, err := Load(filepath.Join(HomeDir(), "config.yaml"))
	if err != nil {
		cfg = Default()
		cfg.applyEnv()
	}
	return cfg
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file. An empty path
// reads ./.env; a missing file is not an error.
func LoadDotEnv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// HomeDir returns the feedprint configuration directory: $FEEDPRINT_HOME,
// or ~/.feedprint.
func HomeDir() string {
	if dir := os.Getenv("FEEDPRINT_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".feedprint"
	}
	return filepath.Join(home, ".feedprint")
}

// ConfigPath returns the file this config is loaded from and saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks formats, ranges and durations.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("output.default_format must be table, json or ndjson, got %q", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("output.precision must be within [0,%d], got %d", maxPrecision, c.Output.Precision)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Data.Source == "" {
		return errors.New("data.source must not be empty")
	}
	if c.Data.FetchTimeout < 0 {
		return fmt.Errorf("data.fetch_timeout must be >= 0, got %s", c.Data.FetchTimeout)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

// applyEnv overlays FEEDPRINT_* environment variables.
func (c *Config) applyEnv() {
	for key, env := range envOverrides {
		if v := os.Getenv(env); v != "" {
			_ = c.Set(key, v)
		}
	}
}

//nolint:gochecknoglobals // Compile-time constant lookup table.
var envOverrides = map[string]string{
	"output.default_format": "FEEDPRINT_OUTPUT",
	"logging.level":         "FEEDPRINT_LOG_LEVEL",
	"logging.format":        "FEEDPRINT_LOG_FORMAT",
	"logging.file":          "FEEDPRINT_LOG_FILE",
	"data.source":           "FEEDPRINT_DATA",
	"data.scenario":         "FEEDPRINT_SCENARIO",
	"server.addr":           "FEEDPRINT_SERVER_ADDR",
}

// GetGlobalConfig returns the process-wide config, loading it on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the process-wide config.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest clears the process-wide config.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

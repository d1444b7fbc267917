package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/feedprint/internal/logging"
)

// LoggingConfig is the `logging` section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Validate checks the level name and format.
func (l LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch l.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", l.Format)
	}
	return nil
}

// ToLoggingConfig converts the section into a logging.Config.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, File: l.File}
}

// GetLoggingConfig returns a copy of the global config's logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

// EnsureLogDir creates the directory of the configured log file, if any.
func EnsureLogDir() error {
	file := GetLoggingConfig().File
	if file == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(file), 0o750)
}

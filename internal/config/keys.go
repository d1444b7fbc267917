package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Get returns the string value of a dotted key such as "output.precision".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "data.source":
		return c.Data.Source, nil
	case "data.scenario":
		return c.Data.Scenario, nil
	case "data.fetch_timeout":
		return c.Data.FetchTimeout.String(), nil
	case "server.addr":
		return c.Server.Addr, nil
	case "server.shutdown_timeout":
		return c.Server.ShutdownTimeout.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted key from its string form. It does not validate
// ranges; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("output.precision: %w", err)
		}
		c.Output.Precision = n
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "data.source":
		c.Data.Source = value
	case "data.scenario":
		c.Data.Scenario = value
	case "data.fetch_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("data.fetch_timeout: %w", err)
		}
		c.Data.FetchTimeout = d
	case "server.addr":
		c.Server.Addr = value
	case "server.shutdown_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("server.shutdown_timeout: %w", err)
		}
		c.Server.ShutdownTimeout = d
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Keys lists every settable key in sorted order.
func Keys() []string {
	keys := []string{
		"output.default_format", "output.precision",
		"logging.level", "logging.format", "logging.file",
		"data.source", "data.scenario", "data.fetch_timeout",
		"server.addr", "server.shutdown_timeout",
	}
	sort.Strings(keys)
	return keys
}

package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedprint/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	configPath := filepath.Join(home, "config.yaml")
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := execute(t, "config", "set", "output.precision", "2")
	require.NoError(t, err)

	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Output.Precision)

	out, _, err := execute(t, "config", "get", "output.precision")
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(out))

	_, _, err = execute(t, "config", "set", "output.default_format", "xml")
	require.Error(t, err)

	_, _, err = execute(t, "config", "get", "plugins.aws")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigSet_DoesNotPersistFlagOverrides(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := execute(t, "--output", "json", "config", "set", "data.scenario", "norway-2024")
	require.NoError(t, err)

	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.FormatTable, loaded.Output.DefaultFormat)
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key+" = ")
	}
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Dataset: norwegian-salmon-feed")

	_, _, err = execute(t, "config", "validate", "--scenario", "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset validation failed")
}

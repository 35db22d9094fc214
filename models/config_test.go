package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig.DefaultProvider, cfg.DefaultProvider)
	assert.Equal(t, DefaultConfig.RefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, DefaultConfig.CacheTTL, cfg.CacheTTL)
	assert.NotEmpty(t, cfg.StateFile)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
default_provider: mailtm
refresh_interval: 10s
state_file: /tmp/test-state.json
log_file: /tmp/test.log
verbose: true
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mailtm", cfg.DefaultProvider)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "/tmp/test-state.json", cfg.StateFile)
	assert.True(t, cfg.Verbose)
	// Unset fields still come from the defaults.
	assert.Equal(t, DefaultConfig.HTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultConfig.LogLevel, cfg.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "config", cfgErr.Field)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_provider: [broken"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestValidateRejectsOutOfRangeInterval(t *testing.T) {
	for _, interval := range []time.Duration{500 * time.Millisecond, 2 * time.Minute} {
		cfg := DefaultConfig
		cfg.RefreshInterval = interval
		cfg.StateFile = "/tmp/state.json"
		cfg.LogFile = "/tmp/log"

		err := cfg.Validate()
		require.Error(t, err, "interval %s should be rejected", interval)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "refresh_interval", cfgErr.Field)
	}
}

func TestValidateFillsZeroFields(t *testing.T) {
	cfg := Config{StateFile: "/tmp/state.json", LogFile: "/tmp/log"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultConfig.DefaultProvider, cfg.DefaultProvider)
	assert.Equal(t, DefaultConfig.RefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, DefaultConfig.HTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultConfig.CacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultConfig.CacheMaxEntries, cfg.CacheMaxEntries)
	assert.Equal(t, DefaultConfig.LogLevel, cfg.LogLevel)
}

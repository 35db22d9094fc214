package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := Setup(path, "info", false)
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"hello"`)
}

func TestSetupLevelFiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := Setup(path, "info", false)
	require.NoError(t, err)

	log.Debug("quiet")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "quiet")
}

func TestSetupVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := Setup(path, "error", true)
	require.NoError(t, err)

	log.Debug("loud")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "loud")
}

func TestSetupInvalidLevel(t *testing.T) {
	_, err := Setup(filepath.Join(t.TempDir(), "app.log"), "shouty", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "utrt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_threads = 8
preemption_enabled = false
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, c.MaxThreads)
	require.False(t, c.PreemptionEnabled)
	// Fields absent from the file keep their defaults.
	require.Equal(t, Default().TimerValMicros, c.TimerValMicros)
}

func TestLoadRejectsInvalidMaxThreads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "utrt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`max_threads = 0`), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

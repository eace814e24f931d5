package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[durations]\nshort = \"2s\"\n"), 0644))

	var latest atomic.Pointer[Config]
	w, err := NewWatcher(path, func(c *Config) { latest.Store(c) }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[durations]\nshort = \"3s\"\n"), 0644))

	require.Eventually(t, func() bool {
		c := latest.Load()
		return c != nil && c.Durations.Short.Duration() == 3*time.Second
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	var calls atomic.Int32
	w, err := NewWatcher(path, func(*Config) { calls.Add(1) }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 500\n"), 0644))
	// Unrelated file in the same directory must not trigger a reload either
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_StopIsIdempotentBeforeStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}

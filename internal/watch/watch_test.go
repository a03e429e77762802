package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Refreshes(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	var last atomic.Value
	w, err := New(50*time.Millisecond, func(d string) {
		last.Store(d)
		calls.Add(1)
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.SetDir(dir))
	assert.Equal(t, filepath.Clean(dir), w.Dir())

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, filepath.Clean(dir), last.Load())
}

func TestWatcher_SwitchDir(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	var calls atomic.Int32
	w, err := New(30*time.Millisecond, func(string) { calls.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.SetDir(first))
	require.NoError(t, w.SetDir(second))
	require.NoError(t, os.WriteFile(filepath.Join(first, "ignored"), nil, 0644))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())

	require.NoError(t, os.WriteFile(filepath.Join(second, "seen"), nil, 0644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := New(0, func(string) {}, nil)
	require.NoError(t, err)
	defer w.Close()
	require.Error(t, w.SetDir(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, w.Dir())
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(0, func(string) {}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.Error(t, w.SetDir(t.TempDir()))
}

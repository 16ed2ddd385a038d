package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	kind, ok := classify("prefabs/arena.yaml")
	assert.True(t, ok)
	assert.Equal(t, ChangeSpec, kind)

	kind, ok = classify("x/intro.TENGO")
	assert.True(t, ok)
	assert.Equal(t, ChangeScript, kind)

	_, ok = classify("notes.txt")
	assert.False(t, ok)
}

func TestWatcherReportsPrefabWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("lives: 2"), 0o644))

	select {
	case c := <-w.Events:
		assert.Equal(t, "player.yaml", c.Name())
		assert.Equal(t, ChangeSpec, c.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

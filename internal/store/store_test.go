package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore rejects every operation.
type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, f.getErr }

func (f *failingStore) Set(string, string) error {
	f.sets++
	return f.setErr
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	_, ok, err := m.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(KeyTheme, "dark"))
	v, ok, err := m.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	seeded := NewMemoryStore(map[string]string{KeyHasUsedDarkMode: "true"})
	v, ok, _ = seeded.Get(KeyHasUsedDarkMode)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestFileStore_SetAndGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "example.com.toml")
	fs := NewFileStore(path, "example.com")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs.now = func() time.Time { return fixed }

	_, ok, err := fs.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, fs.Set(KeyTheme, "light"))
	require.NoError(t, fs.Set(KeyHasUsedDarkMode, "true"))

	e, ok, err := fs.Entry(KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "light", e.Value)
	assert.True(t, fixed.Equal(e.UpdatedAt))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "schema_version = 1")
	assert.Contains(t, string(raw), "example.com")

	// A second store on the same file sees the writes.
	other := NewFileStore(path, "example.com")
	v, ok, err := other.Get(KeyHasUsedDarkMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("entries = [[[ not toml"), 0600))

	fs := NewFileStore(path, "bad")
	_, _, err := fs.Get(KeyTheme)
	assert.Error(t, err)
	assert.Error(t, fs.Set(KeyTheme, "dark"))
}

func TestOriginPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/d", "example.com.toml"), OriginPath("/d", "example.com"))
	assert.Equal(t, filepath.Join("/d", "https_example.com_8080.toml"), OriginPath("/d", "https://example.com:8080"))
	assert.Equal(t, filepath.Join("/d", "default.toml"), OriginPath("/d", ""))
}

func TestDataDir_UsesXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "themectl"), dir)
}

func TestGuarded_WriteFailureKeepsSessionValue(t *testing.T) {
	backing := &failingStore{setErr: errors.New("quota exceeded")}
	g := NewGuarded(backing, nil)

	assert.False(t, g.Set(KeyTheme, "dark"))
	assert.Equal(t, 1, backing.sets)
	assert.True(t, g.Degraded())

	v, ok := g.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestGuarded_ReadFailureReadsAbsent(t *testing.T) {
	g := NewGuarded(&failingStore{getErr: errors.New("access denied")}, nil)

	_, ok := g.Get(KeyTheme)
	assert.False(t, ok)
	assert.True(t, g.Degraded())
}

func TestGuarded_PassThrough(t *testing.T) {
	backing := NewMemoryStore(nil)
	g := NewGuarded(backing, nil)

	assert.True(t, g.Set(KeyTheme, "light"))
	assert.False(t, g.Degraded())

	require.NoError(t, backing.Set(KeyTheme, "dark"))
	v, _ := g.Get(KeyTheme)
	assert.Equal(t, "dark", v, "successful writes are not shadowed by the overlay")
}

func TestGuarded_Forget(t *testing.T) {
	backing := &failingStore{setErr: errors.New("read-only")}
	g := NewGuarded(backing, nil)
	g.Set(KeyTheme, "dark")

	g.Forget(KeyTheme)
	_, ok := g.Get(KeyTheme)
	assert.False(t, ok)
}

func TestGuarded_NilBacking(t *testing.T) {
	g := NewGuarded(nil, nil)
	assert.False(t, g.Set(KeyTheme, "light"))
	v, ok := g.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestFileWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.toml")

	var calls atomic.Int32
	fw, err := NewFileWatcher(path, func() { calls.Add(1) }, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, NewFileStore(path, "watched").Set(KeyTheme, "dark"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.toml"), []byte("x"), 0600))

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcher_StartStopIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "sub", "store.toml"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, fw.Start())
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestFileWatcher_Relevant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	fw, err := NewFileWatcher(path, nil, nil)
	require.NoError(t, err)
	defer fw.Stop()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename into place", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"temporary file", fsnotify.Event{Name: path + ".tmp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fw.relevant(tt.ev))
		})
	}
}

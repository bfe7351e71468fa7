package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// SchemaVersion is the current store file schema version.
const SchemaVersion = 1

// Entry is a stored value with its last write time.
type Entry struct {
	Value     string    `toml:"value"`
	UpdatedAt time.Time `toml:"updated_at"`
}

// fileData is the TOML layout of a store file.
type fileData struct {
	SchemaVersion int              `toml:"schema_version"`
	Origin        string           `toml:"origin"`
	Entries       map[string]Entry `toml:"entries"`
}

// FileStore implements Store on a TOML file, one file per origin.
// Every Get re-reads the file so writes by other processes are visible.
type FileStore struct {
	mu     sync.Mutex
	path   string
	origin string
	now    func() time.Time
}

var unsafeOriginChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DataDir returns the path to the themectl data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/themectl.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "themectl"), nil
}

// OriginPath returns the store file for origin inside dir.
func OriginPath(dir, origin string) string {
	name := unsafeOriginChars.ReplaceAllString(origin, "_")
	if name == "" {
		name = "default"
	}
	return filepath.Join(dir, name+".toml")
}

// NewFileStore creates a FileStore at path. The file is created lazily on
// the first Set.
func NewFileStore(path, origin string) *FileStore {
	return &FileStore{
		path:   path,
		origin: origin,
		now:    time.Now,
	}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value for key.
func (f *FileStore) Get(key string) (string, bool, error) {
	e, ok, err := f.Entry(key)
	return e.Value, ok, err
}

// Entry returns the full entry for key, including its write time.
func (f *FileStore) Entry(key string) (Entry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := data.Entries[key]
	return e, ok, nil
}

// Set stores value under key, rewriting the file atomically.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data.Entries[key] = Entry{Value: value, UpdatedAt: f.now().UTC().Truncate(time.Second)}
	return f.save(data)
}

func (f *FileStore) load() (*fileData, error) {
	data := &fileData{
		SchemaVersion: SchemaVersion,
		Origin:        f.origin,
		Entries:       make(map[string]Entry),
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to read store %s: %w", f.path, err)
	}

	if err := toml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", f.path, err)
	}
	if data.Entries == nil {
		data.Entries = make(map[string]Entry)
	}
	return data, nil
}

func (f *FileStore) save(data *fileData) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	raw, err := toml.Marshal(data)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls back when a store file is replaced or rewritten,
// typically by another themectl process.
//
// The parent directory is watched rather than the file: FileStore renames
// a temporary file over the old one, which would drop a watch on the file
// itself.
type FileWatcher struct {
	fsw    *fsnotify.Watcher
	path   string
	notify func()
	logger *slog.Logger

	quit      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewFileWatcher prepares a watcher for path. notify runs on the watcher
// goroutine, so it must hand off to the owner of any state it touches.
func NewFileWatcher(path string, notify func(), logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		fsw:    fsw,
		path:   filepath.Clean(path),
		notify: notify,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Start begins delivering changes. Repeated calls are no-ops.
func (w *FileWatcher) Start() error {
	var err error
	w.startOnce.Do(func() {
		dir := filepath.Dir(w.path)
		if err = os.MkdirAll(dir, 0755); err != nil {
			return
		}
		if err = w.fsw.Add(dir); err != nil {
			return
		}
		go w.run()
	})
	return err
}

// Stop ends delivery and releases the inotify handle.
func (w *FileWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.quit)
		err = w.fsw.Close()
	})
	return err
}

func (w *FileWatcher) run() {
	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.logger.Debug("store file changed", "path", w.path, "op", ev.Op.String())
				if w.notify != nil {
					w.notify()
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", "path", w.path, "error", err)
		}
	}
}

// relevant reports whether ev changed the contents of the watched file.
// Temporary files written next to it are ignored.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

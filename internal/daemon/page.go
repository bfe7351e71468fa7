package daemon

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmylchreest/themectl/internal/document"
)

// PageWriter writes a document to disk, skipping writes when the rendered
// output has not changed since the last one.
type PageWriter struct {
	path   string
	doc    *document.Document
	logger *slog.Logger
	last   []byte
}

// NewPageWriter creates a writer for doc at path.
func NewPageWriter(path string, doc *document.Document, logger *slog.Logger) *PageWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageWriter{path: path, doc: doc, logger: logger}
}

// Write renders the document and replaces the file when the output
// changed. It reports whether a write happened.
func (w *PageWriter) Write() (bool, error) {
	var buf bytes.Buffer
	if err := w.doc.Render(&buf); err != nil {
		return false, fmt.Errorf("failed to render page: %w", err)
	}
	if w.last != nil && bytes.Equal(buf.Bytes(), w.last) {
		return false, nil
	}

	if err := WriteFileAtomic(w.path, buf.Bytes()); err != nil {
		return false, err
	}
	w.last = buf.Bytes()
	w.logger.Debug("page written", "path", w.path, "bytes", buf.Len())
	return true, nil
}

// Flush writes the page and logs failures. It is meant for EventLoop's
// after-each hook.
func (w *PageWriter) Flush() {
	if _, err := w.Write(); err != nil {
		w.logger.Warn("failed to write page", "path", w.path, "error", err)
	}
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

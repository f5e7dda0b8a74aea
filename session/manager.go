// Package session tracks the single markdown file the viewer has open and
// whether it changed on disk since it was last read or acknowledged.
package session

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// Manager owns the active file record for the lifetime of the process.
// All filesystem access happens outside mu; mu only guards bookkeeping.
type Manager struct {
	fs afero.Fs

	mu  sync.Mutex
	rec record
}

// NewManager returns an empty session backed by fs.
// A nil fs uses the host filesystem.
func NewManager(fs afero.Fs) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Manager{fs: fs}
}

// LoadStartupArg records args[1] as the active path when it exists and has a
// markdown extension. No timestamp is captured; the first ReadFile does that.
// Anything else leaves the session untouched.
func (m *Manager) LoadStartupArg(args []string) bool {
	if len(args) < 2 {
		return false
	}
	path := args[1]

	if !IsMarkdownPath(path) {
		slog.Debug("ignoring startup argument", "path", path, "reason", "extension")
		return false
	}
	if _, err := m.fs.Stat(path); err != nil {
		slog.Debug("ignoring startup argument", "path", path, "error", err)
		return false
	}

	m.mu.Lock()
	m.rec = record{path: path, hasPath: true}
	m.mu.Unlock()

	slog.Info("startup file registered", "path", path)
	return true
}

// ReadFile reads path as text and makes it the active file.
// On failure the session is left as it was.
func (m *Manager) ReadFile(path string) (string, error) {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileAccessError{Path: path, Err: ErrNotText}
	}

	next := record{path: path, hasPath: true}
	if mod, ok := m.modTime(path); ok {
		next.modTime = mod
		next.hasMod = true
	}

	m.mu.Lock()
	m.rec = next
	m.mu.Unlock()

	return string(data), nil
}

// CheckFileChanged reports whether the active file's mtime differs from the
// one last observed. It returns false when there is nothing to compare or the
// file can no longer be stat'ed.
func (m *Manager) CheckFileChanged() bool {
	rec := m.current()
	if !rec.hasPath || !rec.hasMod {
		return false
	}

	mod, ok := m.modTime(rec.path)
	if !ok {
		return false
	}
	return !mod.Equal(rec.modTime)
}

// DismissFileChange acknowledges an external change by storing the file's
// current mtime. A failed stat leaves the stored value alone.
func (m *Manager) DismissFileChange() {
	rec := m.current()
	if !rec.hasPath {
		return
	}

	mod, ok := m.modTime(rec.path)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent ReadFile may have switched files while we were stat'ing.
	if !m.rec.hasPath || m.rec.path != rec.path {
		return
	}
	m.rec.modTime = mod
	m.rec.hasMod = true
}

// GetInitialFile returns the active path, if any.
func (m *Manager) GetInitialFile() (string, bool) {
	rec := m.current()
	return rec.path, rec.hasPath
}

func (m *Manager) Snapshot() Snapshot {
	return m.current().snapshot()
}

func (m *Manager) current() record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec
}

func (m *Manager) modTime(path string) (time.Time, bool) {
	info, err := m.fs.Stat(path)
	if err != nil {
		slog.Debug("stat failed", "path", path, "error", err)
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// IsMarkdownPath reports whether path ends in a .md or .markdown extension.
// The match is case-sensitive, and a leading-dot name like ".md" has no
// extension at all.
func IsMarkdownPath(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return false
	}
	switch ext {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

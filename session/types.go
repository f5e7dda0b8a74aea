package session

import (
	"errors"
	"time"
)

// ErrNotText is the cause reported when a file's bytes are not valid UTF-8.
var ErrNotText = errors.New("stream did not contain valid UTF-8")

// FileAccessError is returned by ReadFile when the file cannot be read as text.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return "failed to read file: " + e.Err.Error()
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Snapshot is a copy of the session record at one point in time.
type Snapshot struct {
	Path       string    `json:"path,omitempty"`
	HasPath    bool      `json:"has_path"`
	ModTime    time.Time `json:"mod_time"`
	HasModTime bool      `json:"has_mod_time"`
}

// record is the state guarded by Manager.mu. Readers copy it under the lock,
// so a path is never observed with another file's timestamp.
type record struct {
	path    string
	hasPath bool
	modTime time.Time
	hasMod  bool
}

func (r record) snapshot() Snapshot {
	return Snapshot{
		Path:       r.path,
		HasPath:    r.hasPath,
		ModTime:    r.modTime,
		HasModTime: r.hasMod,
	}
}

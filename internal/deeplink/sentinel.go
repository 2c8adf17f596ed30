package deeplink

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// sentinelName is the fixed boundary-local marker name. Its lifetime is one
// reload cycle: set by Reset, consumed exactly once at the next attach.
const sentinelName = ".deeplink-reset"

// SentinelStore is the short-lived marker used to suppress deep-link
// reprocessing across a forced reload
type SentinelStore interface {
	// Set durably marks the next attach as post-reset
	Set() error
	// Consume reports whether the marker is present and clears it
	Consume() (bool, error)
}

// FileSentinel keeps the marker as an empty file in the host state
// directory, the cookie equivalent for a headless host process.
type FileSentinel struct {
	path string
}

// NewFileSentinel creates a sentinel store rooted at dir
func NewFileSentinel(dir string) *FileSentinel {
	return &FileSentinel{path: filepath.Join(dir, sentinelName)}
}

// Set implements SentinelStore
func (s *FileSentinel) Set() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, nil, 0o644)
}

// Consume implements SentinelStore
func (s *FileSentinel) Consume() (bool, error) {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

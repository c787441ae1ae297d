// ABOUTME: BlobStore interface for string-keyed blob persistence.
// ABOUTME: Backends: SQLite (default), Badger, Charm KV, and in-memory.
package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// BlobStore stores opaque values by string key.
// This interface allows swapping implementations (e.g., for testing).
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "habits")
}

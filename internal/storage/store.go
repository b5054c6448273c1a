package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys used by rexpress in the durable store.
const (
	HistoryKey = "regexHistory"
	ThemeKey   = "theme"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// ErrPersistence wraps every read or write failure of a backend.
var ErrPersistence = errors.New("persistence error")

// Store is a small durable key-value capability.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// DefaultDir returns ~/.rexpress, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".rexpress")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Open creates the store for the given backend.
// An empty path places the data under DefaultDir.
func Open(backend, path string) (Store, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendFile
	}

	if backend == BackendMemory {
		return NewMemoryStore(), nil
	}

	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data directory: %w", err)
		}
		path = filepath.Join(dir, defaultName(backend))
	}

	switch backend {
	case BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLiteStore(path)
	case BackendBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (use file, sqlite, badger or memory)", backend)
	}
}

func defaultName(backend string) string {
	switch backend {
	case BackendSQLite:
		return "store.db"
	case BackendBadger:
		return "badger"
	default:
		return "store.json"
	}
}

func persistenceError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrPersistence, op, key, err)
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store as a single JSON object on disk.
// Writes go through a temp file and rename so a failed write
// leaves the previous contents intact.
type FileStore struct {
	mu       sync.Mutex
	path     string
	readFile func(string) ([]byte, error)
}

var errCorruptFile = errors.New("corrupt store file")

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, readFile: os.ReadFile}
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, persistenceError("read", key, err)
	}

	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	switch {
	case errors.Is(err, errCorruptFile):
		// Unparseable contents are replaced rather than blocking every write.
		values = map[string]string{}
	case err != nil:
		return persistenceError("read", key, err)
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return persistenceError("encode", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return persistenceError("write", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*")
	if err != nil {
		return persistenceError("write", key, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return persistenceError("write", key, err)
	}
	if err := tmp.Close(); err != nil {
		return persistenceError("write", key, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return persistenceError("write", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) load() (map[string]string, error) {
	data, err := f.readFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptFile, err)
	}
	return values, nil
}

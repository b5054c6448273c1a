package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLiteStore(filepath.Join(dir, "store.db"))
	require.NoError(t, err)

	badgerStore, err := OpenBadgerStore("")
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "store.json")),
		"sqlite": sqliteStore,
		"badger": badgerStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close() //nolint:errcheck
		}
	})
	return stores
}

func TestStore_GetMissingKey(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(HistoryKey)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestStore_SetThenGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ThemeKey, "kiro"))
			require.NoError(t, s.Set(ThemeKey, "midnight"))
			require.NoError(t, s.Set(HistoryKey, "[]"))

			v, ok, err := s.Get(ThemeKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "midnight", v)

			v, ok, err = s.Get(HistoryKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	require.NoError(t, NewFileStore(path).Set(ThemeKey, "jurassic"))

	v, ok, err := NewFileStore(path).Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "jurassic", v)
}

func TestFileStore_CorruptFileIsPersistenceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, err := NewFileStore(path).Get(HistoryKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestFileStore_CorruptFileIsReplacedOnSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	s := NewFileStore(path)

	require.NoError(t, s.Set(ThemeKey, "midnight"))

	v, ok, err := s.Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "midnight", v)
}

func TestFileStore_ReadFailureKeepsExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := NewFileStore(path)
	require.NoError(t, s.Set(HistoryKey, "[]"))
	require.NoError(t, s.Set(ThemeKey, "kiro"))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s.readFile = func(string) ([]byte, error) { return nil, os.ErrPermission }
	err = s.Set(ThemeKey, "midnight")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open("", filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open("SQLite", filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("redis", "")
	assert.Error(t, err)
}

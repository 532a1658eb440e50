package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storageContract is the behavior both adapters must share.
func storageContract(t *testing.T, s Storage) {
	t.Helper()

	_, err := s.Read("absent")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write("k", []byte("v1")))
	got, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Overwrite replaces, never appends.
	require.NoError(t, s.Write("k", []byte("v2")))
	got, err = s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// Keys are independent.
	require.NoError(t, s.Write("other", []byte("x")))
	got, err = s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete("k"))
	_, err = s.Read("k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is a no-op.
	assert.NoError(t, s.Delete("k"))
}

func TestMemoryStorageContract(t *testing.T) {
	storageContract(t, NewMemoryStorage())
}

func TestSQLiteStorageContract(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "contract.db"))
	require.NoError(t, err)
	defer s.Close()
	storageContract(t, s)
}

func TestSQLiteStorageReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	first, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, first.Write("k", []byte("persisted")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer second.Close()
	got, err := second.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}

func TestMemoryStorageCopies(t *testing.T) {
	s := NewMemoryStorage()
	buf := []byte("mutable")
	require.NoError(t, s.Write("k", buf))
	buf[0] = 'X'

	got, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), got)

	// Mutating a read result must not affect the stored value.
	got[0] = 'Y'
	again, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), again)
}

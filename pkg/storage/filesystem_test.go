package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	_, err = store.Read("teachers.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, store.WriteAtomic("teachers.json", []byte(`[1]`)))
	require.NoError(t, store.WriteAtomic("teachers.json", []byte(`[2]`)))

	data, err := store.Read("teachers.json")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")

	require.NoError(t, store.Delete("teachers.json"))
	require.NoError(t, store.Delete("teachers.json"))
}

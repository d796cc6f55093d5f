package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoad(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save("profile", []byte(`{"a":1}`)))

	got, err := s.Load("profile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_OverwriteReplacesValue(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save("k", []byte("first")))
	require.NoError(t, s.Save("k", []byte("second")))

	got, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFileStore_RejectsUnsafeKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	tests := []string{"../escape", "a/b", "", "spa ce"}
	for _, key := range tests {
		assert.Error(t, s.Save(key, []byte("x")), "key %q must be rejected", key)
	}
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save("k", []byte("value")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", filepath.Base(entries[0].Name()))
}

package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("k", []byte(`{"v":1}`)))

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"v":1}`, string(got))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte(`"value"`)))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	got, ok := reopened.Get("k")
	require.True(t, ok)
	assert.Equal(t, `"value"`, string(got))
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestFileStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("1")))

	require.NoError(t, store.Delete("k"))
	_, ok := store.Get("k")
	assert.False(t, ok)

	// Deleting again is a no-op
	require.NoError(t, store.Delete("k"))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", []byte("abc")))

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	require.NoError(t, store.Delete("k"))
	_, ok = store.Get("k")
	assert.False(t, ok)
}

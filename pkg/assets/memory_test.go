package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreWriteAndExists(t *testing.T) {
	store := NewMemoryStore()

	path, err := store.Write("images", "abc_mug.png", []byte{0x1})
	require.NoError(t, err)
	assert.Equal(t, "/images/abc_mug.png", path)

	ok, err := store.Exists("images", "abc_mug.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists("images", "missing.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDeleteAbsent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.EnsureNamespace("images"))

	err := store.Delete("images", "nothing.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreDeleteThenExists(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Write("images", "a.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete("images", "a.png"))

	ok, err := store.Exists("images", "a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	// Second delete reports absence.
	assert.True(t, errors.Is(store.Delete("images", "a.png"), ErrNotFound))
}

func TestEnsureNamespaceIdempotent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.EnsureNamespace("images"))
	require.NoError(t, store.EnsureNamespace("images"))
}

func TestFileNameFromLogicalPath(t *testing.T) {
	assert.Equal(t, "abc_mug.png", FileName("/images/abc_mug.png"))
	assert.Equal(t, "plain.png", FileName("plain.png"))
}

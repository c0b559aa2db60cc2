package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBlob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	in := testBlob{Name: "catalog", Count: 3}
	require.NoError(t, store.Save("catalog", in))

	var out testBlob
	require.NoError(t, store.Load("catalog", &out))
	assert.Equal(t, in, out)
}

func TestLoadMissingKey(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	var out testBlob
	assert.ErrorIs(t, store.Load("never-saved", &out), ErrNoSnapshot)
}

func TestSaveReplacesWholeBlob(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("catalog", testBlob{Name: "first", Count: 1}))
	require.NoError(t, store.Save("catalog", testBlob{Name: "second", Count: 2}))

	var out testBlob
	require.NoError(t, store.Load("catalog", &out))
	assert.Equal(t, testBlob{Name: "second", Count: 2}, out)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("catalog", testBlob{Name: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog.json", entries[0].Name())
}

func TestNewBlobStoreCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewBlobStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

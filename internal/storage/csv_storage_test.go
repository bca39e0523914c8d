package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topic-engine/backend/internal/corpus"
	"github.com/topic-engine/backend/internal/storage"
)

func newTestStorage(t *testing.T) (*storage.CSVStorage, string) {
	tmpDir := t.TempDir()
	store := storage.NewCSVStorage(
		filepath.Join(tmpDir, "tokens.csv"),
		filepath.Join(tmpDir, "files.csv"),
	)
	return store, tmpDir
}

func TestCSVStorageRoundTrip(t *testing.T) {
	store, _ := newTestStorage(t)

	documents := []corpus.Document{
		{Index: 0, Path: "/data/a.txt", Tokens: []string{"cat", "dog"}},
		{Index: 1, Path: "/data/b.txt", Tokens: []string{"fish"}},
		{Index: 2, Path: "/data/c.txt", Tokens: nil},
	}
	require.NoError(t, store.Save(documents))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, 0, loaded[0].Index)
	assert.Equal(t, "/data/a.txt", loaded[0].Path)
	assert.Equal(t, []string{"cat", "dog"}, loaded[0].Tokens)
	assert.Empty(t, loaded[2].Tokens)
}

func TestCSVStorageSaveReplacesPrevious(t *testing.T) {
	store, _ := newTestStorage(t)

	require.NoError(t, store.Save([]corpus.Document{
		{Index: 0, Tokens: []string{"old"}},
		{Index: 1, Tokens: []string{"older"}},
	}))
	require.NoError(t, store.Save([]corpus.Document{
		{Index: 0, Tokens: []string{"new"}},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []string{"new"}, loaded[0].Tokens)
}

func TestCSVStorageRejectsMalformedTokens(t *testing.T) {
	store, tmpDir := newTestStorage(t)

	content := "index,tokens\n0,\"not valid json\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "tokens.csv"), []byte(content), 0644))

	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrMalformedRecord)
}

func TestCSVStorageRejectsMalformedIndex(t *testing.T) {
	store, tmpDir := newTestStorage(t)

	content := "index,tokens\nabc,\"[\"\"cat\"\"]\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "tokens.csv"), []byte(content), 0644))

	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrMalformedRecord)
}

func TestCSVStorageLoadMissingFile(t *testing.T) {
	store, _ := newTestStorage(t)
	_, err := store.Load()
	assert.Error(t, err)
}

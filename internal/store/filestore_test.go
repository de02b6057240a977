package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotClient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := []snapshotClient{
		{ID: "c1", Name: "Tacos El Patrón"},
		{ID: "c2", Name: "Fonda Doña Mary"},
	}
	require.NoError(t, fs.Save(CollectionClients, in))

	var out []snapshotClient
	require.NoError(t, fs.Load(CollectionClients, &out))
	assert.Equal(t, in, out)
}

func TestFileStoreLoadMissingCollection(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []snapshotClient
	require.NoError(t, fs.Load(CollectionUsers, &out))
	assert.Nil(t, out)
}

func TestFileStoreSaveReplacesWholeCollection(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(CollectionClients, []snapshotClient{
		{ID: "c1", Name: "Tacos El Patrón"},
		{ID: "c2", Name: "Fonda Doña Mary"},
	}))
	require.NoError(t, fs.Save(CollectionClients, []snapshotClient{
		{ID: "c3", Name: "Hotel Malecón"},
	}))

	var out []snapshotClient
	require.NoError(t, fs.Load(CollectionClients, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "c3", out[0].ID)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save(CollectionClients, []snapshotClient{{ID: "c1"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, CollectionClients+".json", entries[0].Name())
}

func TestFileStoreLoadCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.json"), []byte("{not json"), 0o644))

	var out []snapshotClient
	assert.Error(t, fs.Load(CollectionClients, &out))
}

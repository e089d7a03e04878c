package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"clinic-api/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	saved := profile{ID: "u1", Name: "Jay"}
	require.NoError(t, store.Save("user_data", saved))

	var loaded profile
	found, err := store.Load("user_data", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	var loaded profile
	found, err := store.Load("user_data", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreCorruptBlobTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_data.json"), []byte("{not valid json"), 0644))

	var loaded profile
	found, err := store.Load("user_data", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("health_packages_cart", []profile{{ID: "p1"}}))
	require.NoError(t, store.Delete("health_packages_cart"))

	var loaded []profile
	found, err := store.Load("health_packages_cart", &loaded)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete("health_packages_cart"))
}

func TestFileStoreReopenSeesState(t *testing.T) {
	dir := t.TempDir()

	first, err := localstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save("admin_username", "admin"))

	second, err := localstore.NewFileStore(dir)
	require.NoError(t, err)

	var username string
	found, err := second.Load("admin_username", &username)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "admin", username)
}

func TestMemoryStoreCorruptBlob(t *testing.T) {
	store := localstore.NewMemoryStore()
	store.Put("user_data", []byte("garbage"))

	var loaded profile
	found, err := store.Load("user_data", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, store.Has("user_data"))
}

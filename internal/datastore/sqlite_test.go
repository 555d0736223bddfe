package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "skyfit.db"))
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreSaveAndLoad(t *testing.T) {
	store := openTestDB(t)

	records := testRecords(3615)
	require.NoError(t, store.Save(3615, records))

	loaded, err := store.GetPlate(3615)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, records[0], loaded[0])
	assert.Equal(t, 17, loaded[1].SpecNo)
	assert.Zero(t, loaded[1].R2)
}

func TestSQLiteStoreReplaceOnResave(t *testing.T) {
	store := openTestDB(t)

	require.NoError(t, store.Save(3615, testRecords(3615)))

	// re-running a plate replaces its rows instead of appending
	replacement := testRecords(3615)[:1]
	require.NoError(t, store.Save(3615, replacement))

	loaded, err := store.GetPlate(3615)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 4, loaded[0].SpecNo)
}

func TestSQLiteStoreHasPlate(t *testing.T) {
	store := openTestDB(t)

	ok, err := store.HasPlate(3615)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(3615, testRecords(3615)))

	ok, err = store.HasPlate(3615)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStorePlatesIsolated(t *testing.T) {
	store := openTestDB(t)

	require.NoError(t, store.Save(3615, testRecords(3615)))
	require.NoError(t, store.Save(4010, testRecords(4010)))

	loaded, err := store.GetPlate(3615)
	require.NoError(t, err)
	for _, r := range loaded {
		assert.Equal(t, 3615, r.Plate)
	}

	ok, err := store.HasPlate(4010)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err = store.GetPlate(9999)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

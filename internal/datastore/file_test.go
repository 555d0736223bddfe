package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfagrelius/skyfit-go/internal/fitter"
)

func testRecords(plate int) []fitter.Record {
	return []fitter.Record{
		{
			Plate:      plate,
			SpecNo:     4,
			Camera:     "b1",
			Wave:       []float64{5000, 5001, 5002},
			Lines:      []float64{0.1, 0.9, 0.1},
			Continuum:  []float64{1.0, 1.0, 1.0},
			Residual:   []float64{0.01, -0.02, 0.01},
			R2:         0.998,
			FitSeconds: 0.004,
		},
		{
			Plate:  plate,
			SpecNo: 17,
			Camera: "xx",
			// degenerate record
			Wave:      []float64{},
			Lines:     []float64{},
			Continuum: []float64{},
			Residual:  []float64{},
		},
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Open())

	records := testRecords(3615)
	require.NoError(t, store.Save(3615, records))

	loaded, err := store.GetPlate(3615)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestFileStoreHasPlate(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Open())

	ok, err := store.HasPlate(3615)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(3615, testRecords(3615)))

	ok, err = store.HasPlate(3615)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.HasPlate(4010)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreOutputNaming(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Open())
	require.NoError(t, store.Save(4010, testRecords(4010)))

	_, err := os.Stat(filepath.Join(dir, "4010_split_fit.json"))
	assert.NoError(t, err)

	// no leftover temp file
	_, err = os.Stat(filepath.Join(dir, "4010_split_fit.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store := NewFileStore(dir)
	require.NoError(t, store.Open())
	require.NoError(t, store.Save(1, testRecords(1)))
}

func TestMultiStoreHasPlateRequiresAll(t *testing.T) {
	a := NewFileStore(t.TempDir())
	b := NewFileStore(t.TempDir())
	multi := NewMultiStore([]Store{a, b}, []string{"a", "b"}, nil)
	require.NoError(t, multi.Open())

	require.NoError(t, a.Save(3615, testRecords(3615)))

	ok, err := multi.HasPlate(3615)
	require.NoError(t, err)
	assert.False(t, ok, "plate missing from one sink must not count as complete")

	require.NoError(t, multi.Save(3615, testRecords(3615)))

	ok, err = multi.HasPlate(3615)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMultiStoreEmptyNeverComplete(t *testing.T) {
	multi := NewMultiStore(nil, nil, nil)
	ok, err := multi.HasPlate(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

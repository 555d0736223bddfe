package spectrum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meta.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMetadata(t *testing.T) {
	path := writeTempCSV(t, `PLATE,SPECNO,CAMERAS
3615,4,b1
3615,17,r2
4010,2,b2
`)

	m, err := LoadMetadata(path)
	require.NoError(t, err)

	rows := m.ForPlate(3615)
	require.Len(t, rows, 2)
	assert.Equal(t, MetaEntry{Plate: 3615, SpecNo: 4, Camera: "b1"}, rows[0])
	assert.Equal(t, MetaEntry{Plate: 3615, SpecNo: 17, Camera: "r2"}, rows[1])

	assert.Len(t, m.ForPlate(4010), 1)
	assert.Empty(t, m.ForPlate(9999))
	assert.ElementsMatch(t, []int{3615, 4010}, m.Plates())
}

func TestLoadMetadataColumnOrder(t *testing.T) {
	// Column discovery is by header name, not position.
	path := writeTempCSV(t, `CAMERAS,PLATE,SPECNO
r1,3615,8
`)

	m, err := LoadMetadata(path)
	require.NoError(t, err)

	rows := m.ForPlate(3615)
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0].Camera)
	assert.Equal(t, 8, rows[0].SpecNo)
}

func TestLoadMetadataMissingColumn(t *testing.T) {
	path := writeTempCSV(t, `PLATE,SPECNO
3615,4
`)

	_, err := LoadMetadata(path)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryMetadata))
}

func TestLoadMetadataMalformedRow(t *testing.T) {
	path := writeTempCSV(t, `PLATE,SPECNO,CAMERAS
3615,notanumber,b1
`)

	_, err := LoadMetadata(path)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryMetadata))
}

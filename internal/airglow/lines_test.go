package airglow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{Lines: []Line{
		{Wave: 557.7, Intensity: 250},  // bright green OI line, both bands
		{Wave: 630.0, Intensity: 80},   // red OI line, both bands
		{Wave: 435.8, Intensity: 12},   // blue only by wavelength
		{Wave: 589.0, Intensity: 5},    // NaD, too weak for the blue cut
		{Wave: 486.1, Intensity: 2},    // below both thresholds
		{Wave: 894.3, Intensity: 40},   // OH, red band only
		{Wave: 1083.0, Intensity: 0.5}, // below both thresholds
	}}
}

func TestVacuumLinesThresholdAndBand(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	lists := BuildLineLists(catalog, 10, 3)

	// Blue: intensity > 10 and vacuum wavelength < 700 nm.
	require.Len(t, lists.Blue, 3)
	// Red: intensity > 3 and vacuum wavelength > 560 nm.
	require.Len(t, lists.Red, 4)

	// Returned values are in vacuum angstroms on the observed grid scale.
	for _, l := range lists.Blue {
		assert.Greater(t, l, 3000.0)
		assert.Less(t, l, 7000.0)
	}
	for _, l := range lists.Red {
		assert.Greater(t, l, 5600.0)
		assert.Less(t, l, 11000.0)
	}
}

func TestVacuumLinesIndependentThresholds(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	lists := BuildLineLists(catalog, 10, 3)

	// NaD at intensity 5 passes the red cut but not the blue one even
	// though its wavelength sits in both bands.
	naDVac := airToVacOne(589.0) * nmToAngstrom
	assert.NotContains(t, lists.Blue, naDVac)
	assert.Contains(t, lists.Red, naDVac)
}

func TestVacuumLinesDeterministic(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	first := BuildLineLists(catalog, 10, 3)
	second := BuildLineLists(catalog, 10, 3)

	assert.Equal(t, first.Blue, second.Blue)
	assert.Equal(t, first.Red, second.Red)
}

func TestVacuumLinesOpenBounds(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	all := catalog.VacuumLines(0, math.Inf(-1), math.Inf(1))
	require.Len(t, all, len(catalog.Lines))
}

func TestForCamera(t *testing.T) {
	t.Parallel()

	lists := BuildLineLists(testCatalog(), 10, 3)

	tests := []struct {
		camera string
		want   []float64
		ok     bool
	}{
		{CameraBlue1, lists.Blue, true},
		{CameraBlue2, lists.Blue, true},
		{CameraRed1, lists.Red, true},
		{CameraRed2, lists.Red, true},
		{"z1", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := lists.ForCamera(tt.camera)
		if ok != tt.ok {
			t.Errorf("ForCamera(%q) ok = %v, want %v", tt.camera, ok, tt.ok)
		}
		assert.Equal(t, tt.want, got, "camera %q", tt.camera)
	}
}

package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDropsNonFiniteFlux(t *testing.T) {
	s := &Spectrum{
		SpecNo: 12,
		Wave:   []float64{5000, 5001, 5002, 5003, 5004, 5005},
		Sky:    []float64{1, math.NaN(), 3, math.Inf(1), 5, math.Inf(-1)},
		Sigma:  []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		Disp:   []float64{1.0, 1.1, 1.2, 1.3, 1.4, 1.5},
	}

	wave, sky, sigma, disp := s.Clean()

	assert.Equal(t, []float64{5000, 5002, 5004}, wave)
	assert.Equal(t, []float64{1, 3, 5}, sky)
	assert.Equal(t, []float64{0.1, 0.3, 0.5}, sigma)
	assert.Equal(t, []float64{1.0, 1.2, 1.4}, disp)
}

func TestCleanAlignment(t *testing.T) {
	// Every third flux sample is unusable; all four arrays must shrink
	// by the same amount and stay aligned.
	const n = 99
	s := &Spectrum{}
	bad := 0
	for i := 0; i < n; i++ {
		s.Wave = append(s.Wave, 5000+float64(i))
		if i%3 == 0 {
			s.Sky = append(s.Sky, math.NaN())
			bad++
		} else {
			s.Sky = append(s.Sky, float64(i))
		}
		s.Sigma = append(s.Sigma, float64(i)/10)
		s.Disp = append(s.Disp, 1.0)
	}

	wave, sky, sigma, disp := s.Clean()

	require.Len(t, wave, n-bad)
	require.Len(t, sky, n-bad)
	require.Len(t, sigma, n-bad)
	require.Len(t, disp, n-bad)
	for i, w := range wave {
		assert.Equal(t, w-5000, sky[i], "flux must stay paired with its wavelength")
	}
}

func TestCleanAllFinite(t *testing.T) {
	s := &Spectrum{
		Wave:  []float64{1, 2, 3},
		Sky:   []float64{4, 5, 6},
		Sigma: []float64{7, 8, 9},
		Disp:  []float64{1, 1, 1},
	}
	wave, sky, _, _ := s.Clean()
	assert.Equal(t, s.Wave, wave)
	assert.Equal(t, s.Sky, sky)
}

func TestPlateFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		plate   int
		wantErr bool
	}{
		{"plain", "3615_sigma_sky_flux.json", 3615, false},
		{"with directory", "/data/plates/4010_sigma_sky_flux.json", 4010, false},
		{"wrong suffix", "3615_flux.json", 0, true},
		{"non-numeric plate", "abc_sigma_sky_flux.json", 0, true},
		{"suffix only", "_sigma_sky_flux.json", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plate, err := PlateFromFilename(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.plate, plate)
		})
	}
}

func TestPlateSpectrumLookup(t *testing.T) {
	p := &Plate{
		Plate: 3615,
		Spectra: []Spectrum{
			{SpecNo: 4},
			{SpecNo: 17},
		},
	}

	s, ok := p.Spectrum(17)
	require.True(t, ok)
	assert.Equal(t, 17, s.SpecNo)

	_, ok = p.Spectrum(99)
	assert.False(t, ok)
}

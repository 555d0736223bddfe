package fitter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// syntheticSpectrum builds a spectrum that is exactly a linear continuum
// plus two Gaussian airglow lines, so the regression can recover it to
// numerical precision.
func syntheticSpectrum(t *testing.T) (*spectrum.Spectrum, []float64) {
	t.Helper()

	lines := []float64{5020, 5060}
	amps := []float64{3.0, 1.5}
	const n = 100

	s := &spectrum.Spectrum{SpecNo: 1}
	for i := 0; i < n; i++ {
		w := 5000.0 + float64(i)
		sig := 1.2
		flux := 5.0 + 0.01*(w-5050.0)
		for k, line := range lines {
			d := (w - line) / sig
			flux += amps[k] * math.Exp(-0.5*d*d)
		}
		s.Wave = append(s.Wave, w)
		s.Sky = append(s.Sky, flux)
		s.Sigma = append(s.Sigma, 0.1)
		s.Disp = append(s.Disp, 1.2)
	}
	return s, lines
}

func TestLinearModelRecoversSyntheticSpectrum(t *testing.T) {
	s, lines := syntheticSpectrum(t)

	result, err := LinearModel(s, lines, 4)
	require.NoError(t, err)

	assert.Greater(t, result.R2, 0.99)
	require.Len(t, result.Coeffs, 6)

	// the generating signal lies exactly in the model's column space, so
	// the line amplitudes come back as the raw coefficients
	assert.InDelta(t, 3.0, result.Coeffs[4], 0.05*3.0)
	assert.InDelta(t, 1.5, result.Coeffs[5], 0.05*1.5)

	// line component peaks at the right sample
	peakIdx := 0
	for i, v := range result.Lines {
		if v > result.Lines[peakIdx] {
			peakIdx = i
		}
	}
	assert.InDelta(t, 5020.0, result.Wave[peakIdx], 1.0)
}

func TestLinearModelReconstruction(t *testing.T) {
	s, lines := syntheticSpectrum(t)

	result, err := LinearModel(s, lines, 4)
	require.NoError(t, err)

	// continuum + lines + residual reproduces the observed flux exactly
	for i := range result.Wave {
		total := result.Continuum[i] + result.Lines[i] + result.Residual[i]
		assert.InDelta(t, s.Sky[i], total, 1e-9)
	}
}

func TestLinearModelDropsNonFiniteFlux(t *testing.T) {
	s, lines := syntheticSpectrum(t)
	s.Sky[10] = math.NaN()
	s.Sky[20] = math.Inf(1)

	result, err := LinearModel(s, lines, 4)
	require.NoError(t, err)
	assert.Len(t, result.Wave, len(s.Wave)-2)
	assert.Greater(t, result.R2, 0.99)
}

func TestLinearModelUnderdetermined(t *testing.T) {
	s := &spectrum.Spectrum{
		SpecNo: 2,
		Wave:   []float64{5000, 5001, 5002},
		Sky:    []float64{1, 2, 3},
		Sigma:  []float64{0.1, 0.1, 0.1},
		Disp:   []float64{1, 1, 1},
	}

	_, err := LinearModel(s, []float64{5001, 5002}, 4)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryRegression))
}

func TestLinearModelNoUsableSamples(t *testing.T) {
	s := &spectrum.Spectrum{
		SpecNo: 3,
		Wave:   []float64{5000, 5001},
		Sky:    []float64{math.NaN(), math.Inf(-1)},
		Sigma:  []float64{0.1, 0.1},
		Disp:   []float64{1, 1},
	}

	_, err := LinearModel(s, []float64{5000.5}, 2)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestLinearModelNoLines(t *testing.T) {
	s, _ := syntheticSpectrum(t)
	_, err := LinearModel(s, nil, 4)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestContinuumMatrixLegendreValues(t *testing.T) {
	wave := []float64{5000, 5050, 5100}
	m := ContinuumMatrix(wave, 3)

	// endpoints map to x = -1 and x = 1, the midpoint to x = 0
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-12)
	assert.InDelta(t, -1.0, m.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, m.At(0, 2), 1e-12) // P2(-1) = 1

	assert.InDelta(t, 0.0, m.At(1, 1), 1e-12)
	assert.InDelta(t, -0.5, m.At(1, 2), 1e-12) // P2(0) = -1/2

	assert.InDelta(t, 1.0, m.At(2, 1), 1e-12)
	assert.InDelta(t, 1.0, m.At(2, 2), 1e-12) // P2(1) = 1
}

func TestLineProfileMatrixPeaksAndWidth(t *testing.T) {
	wave := []float64{5028, 5029, 5030, 5031, 5032}
	narrow := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
	wide := []float64{2, 2, 2, 2, 2}
	lines := []float64{5030}

	mn := LineProfileMatrix(wave, narrow, lines)
	mw := LineProfileMatrix(wave, wide, lines)

	// unit peak at the line center regardless of width
	assert.InDelta(t, 1.0, mn.At(2, 0), 1e-12)
	assert.InDelta(t, 1.0, mw.At(2, 0), 1e-12)

	// a larger dispersion widens the profile
	assert.Less(t, mn.At(0, 0), mw.At(0, 0))
}

func TestRSquaredFlatSignal(t *testing.T) {
	y := []float64{2, 2, 2, 2}
	assert.Equal(t, 1.0, rSquared(y, []float64{2, 2, 2, 2}))
	assert.Equal(t, 0.0, rSquared(y, []float64{1, 1, 1, 1}))
}

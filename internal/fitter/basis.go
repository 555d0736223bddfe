// Package fitter decomposes night-sky spectra into airglow emission lines
// and a smooth continuum with a single linear least-squares fit.
package fitter

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LineProfileMatrix builds one unit-peak Gaussian column per airglow line,
// evaluated on the wavelength grid. The profile width follows the
// instrument dispersion at each sample, so a line's footprint varies along
// the grid rather than being fixed per line.
func LineProfileMatrix(wave, disp, lines []float64) *mat.Dense {
	rows, cols := len(wave), len(lines)
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		sig := disp[i]
		for j, line := range lines {
			d := (wave[i] - line) / sig
			m.Set(i, j, math.Exp(-0.5*d*d))
		}
	}
	return m
}

// ContinuumMatrix builds Legendre polynomial columns P_0..P_{terms-1} for
// the smooth continuum. The grid is rescaled to [-1, 1] before evaluation;
// the rescaling is affine, so the fitted column space is unchanged while
// the normal equations stay well conditioned on narrow grids.
func ContinuumMatrix(wave []float64, terms int) *mat.Dense {
	rows := len(wave)
	m := mat.NewDense(rows, terms, nil)

	lo, hi := wave[0], wave[0]
	for _, w := range wave {
		if w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}
	span := hi - lo
	for i, w := range wave {
		x := 0.0
		if span > 0 {
			x = 2*(w-lo)/span - 1
		}

		// Bonnet recurrence: (n+1) P_{n+1} = (2n+1) x P_n - n P_{n-1}.
		prev, cur := 1.0, x
		for j := 0; j < terms; j++ {
			switch j {
			case 0:
				m.Set(i, j, 1)
			case 1:
				m.Set(i, j, x)
			default:
				n := float64(j - 1)
				next := ((2*n+1)*x*cur - n*prev) / (n + 1)
				prev, cur = cur, next
				m.Set(i, j, next)
			}
		}
	}
	return m
}

// DesignMatrix concatenates continuum and line-profile columns into the
// single regression design, continuum first.
func DesignMatrix(cont, lines *mat.Dense) *mat.Dense {
	rows, nc := cont.Dims()
	_, nl := lines.Dims()
	m := mat.NewDense(rows, nc+nl, nil)
	m.Slice(0, rows, 0, nc).(*mat.Dense).Copy(cont)
	if nl > 0 {
		m.Slice(0, rows, nc, nc+nl).(*mat.Dense).Copy(lines)
	}
	return m
}

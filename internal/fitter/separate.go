package fitter

import "gonum.org/v1/gonum/mat"

// Components is a fitted spectrum split into its additive parts. At every
// sample Continuum + Lines + Residual reconstructs the observed flux.
type Components struct {
	Continuum []float64
	Lines     []float64
	Residual  []float64
}

// Separate splits a fitted model into continuum and line contributions by
// partitioning the design columns: the first numCont columns belong to the
// continuum, the rest to the line profiles. The residual is the observed
// flux minus the full model.
func Separate(design *mat.Dense, coeffs, y []float64, numCont int) *Components {
	rows, cols := design.Dims()

	cont := make([]float64, rows)
	lines := make([]float64, rows)
	resid := make([]float64, rows)

	for i := 0; i < rows; i++ {
		var c, l float64
		for j := 0; j < numCont; j++ {
			c += design.At(i, j) * coeffs[j]
		}
		for j := numCont; j < cols; j++ {
			l += design.At(i, j) * coeffs[j]
		}
		cont[i] = c
		lines[i] = l
		resid[i] = y[i] - c - l
	}

	return &Components{Continuum: cont, Lines: lines, Residual: resid}
}

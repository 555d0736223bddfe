package fitter

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

// OLSFit holds the outcome of an ordinary least squares regression.
type OLSFit struct {
	// Coeffs are the fitted coefficients, one per design column.
	Coeffs []float64
	// Model is the fitted values design * coeffs.
	Model []float64
	// R2 is the coefficient of determination of the fit.
	R2 float64
}

// OLS solves design * beta = y in the least squares sense via a QR
// factorization. It fails with a regression error when the system is
// underdetermined or the design is rank deficient, without panicking.
func OLS(design *mat.Dense, y []float64) (*OLSFit, error) {
	rows, cols := design.Dims()
	if cols == 0 {
		return nil, errors.Newf("regression design has no columns").
			Component("fitter").
			Category(errors.CategoryRegression).
			Build()
	}
	if rows < cols {
		return nil, errors.Newf("regression is underdetermined: %d samples for %d model columns", rows, cols).
			Component("fitter").
			Category(errors.CategoryRegression).
			Context("rows", rows).
			Context("cols", cols).
			Build()
	}

	var qr mat.QR
	qr.Factorize(design)

	beta := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(beta, false, mat.NewVecDense(rows, y)); err != nil {
		// gonum reports near-singular systems through a Condition error.
		return nil, errors.New(err).
			Component("fitter").
			Category(errors.CategoryRegression).
			Context("rows", rows).
			Context("cols", cols).
			Build()
	}

	coeffs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		coeffs[j] = beta.At(j, 0)
	}

	model := make([]float64, rows)
	fitted := mat.NewDense(rows, 1, nil)
	fitted.Mul(design, beta)
	for i := 0; i < rows; i++ {
		model[i] = fitted.At(i, 0)
	}

	return &OLSFit{
		Coeffs: coeffs,
		Model:  model,
		R2:     rSquared(y, model),
	}, nil
}

// rSquared is the centered coefficient of determination,
// 1 - SS_res/SS_tot. A flat signal with a perfect fit reports 1.
func rSquared(y, model []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i, v := range y {
		r := v - model[i]
		ssRes += r * r
		d := v - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

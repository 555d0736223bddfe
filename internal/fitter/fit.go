package fitter

import (
	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// Result is the decomposition of a single cleaned spectrum.
type Result struct {
	// Wave is the cleaned wavelength grid the fit was evaluated on.
	Wave []float64
	// Lines is the summed airglow line contribution at each sample.
	Lines []float64
	// Continuum is the smooth continuum contribution at each sample.
	Continuum []float64
	// Residual is observed flux minus the full fitted model.
	Residual []float64
	// R2 is the coefficient of determination of the combined fit.
	R2 float64
	// Coeffs are the raw regression coefficients, continuum terms first.
	Coeffs []float64
}

// LinearModel fits one spectrum against a design of Legendre continuum
// terms plus unit-peak Gaussian profiles at the given line centers, then
// separates the fitted model into its parts. Non-finite flux samples are
// dropped before fitting.
func LinearModel(s *spectrum.Spectrum, lines []float64, numCont int) (*Result, error) {
	wave, sky, _, disp := s.Clean()

	if len(wave) == 0 {
		return nil, errors.Newf("spectrum %d has no usable samples", s.SpecNo).
			Component("fitter").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(lines) == 0 {
		return nil, errors.Newf("no airglow lines fall inside the fitting band").
			Component("fitter").
			Category(errors.CategoryValidation).
			Build()
	}

	cont := ContinuumMatrix(wave, numCont)
	profiles := LineProfileMatrix(wave, disp, lines)
	design := DesignMatrix(cont, profiles)

	fit, err := OLS(design, sky)
	if err != nil {
		return nil, err
	}

	parts := Separate(design, fit.Coeffs, sky, numCont)

	return &Result{
		Wave:      wave,
		Lines:     parts.Lines,
		Continuum: parts.Continuum,
		Residual:  parts.Residual,
		R2:        fit.R2,
		Coeffs:    fit.Coeffs,
	}, nil
}

// Package spectrum holds the observed sky-spectrum data model and its input
// collaborators: plate flux files and the plate/spectrum metadata table.
package spectrum

import "math"

// Spectrum is one observed object's sky flux. The four arrays share length
// and index alignment: Wave is the wavelength grid in angstroms (strictly
// increasing), Sky the observed flux (may contain non-finite entries), Sigma
// the per-sample noise estimate and Disp the per-sample spectral resolution
// used as the Gaussian width of modeled line profiles.
type Spectrum struct {
	SpecNo int       `json:"specno"`
	Wave   []float64 `json:"wave"`
	Sky    []float64 `json:"sky"`
	Sigma  []float64 `json:"sigma"`
	Disp   []float64 `json:"disp"`
}

// Clean drops every sample whose flux is non-finite, removing the aligned
// entries from all four arrays so the index alignment survives.
func (s *Spectrum) Clean() (wave, sky, sigma, disp []float64) {
	n := len(s.Sky)
	wave = make([]float64, 0, n)
	sky = make([]float64, 0, n)
	sigma = make([]float64, 0, n)
	disp = make([]float64, 0, n)

	for i, flux := range s.Sky {
		if math.IsNaN(flux) || math.IsInf(flux, 0) {
			continue
		}
		wave = append(wave, s.Wave[i])
		sky = append(sky, flux)
		sigma = append(sigma, s.Sigma[i])
		disp = append(disp, s.Disp[i])
	}

	return wave, sky, sigma, disp
}

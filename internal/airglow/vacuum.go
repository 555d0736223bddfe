package airglow

// AirToVac converts wavelengths measured in air to vacuum wavelengths using
// the Edlen 1966 dispersion-of-air model. Input and output are in nanometers.
// The conversion is elementwise, each output depends only on the
// corresponding input. Behavior for non-positive wavelengths is undefined,
// callers guarantee positive input.
func AirToVac(wave []float64) []float64 {
	vac := make([]float64, len(wave))
	for i, w := range wave {
		vac[i] = airToVacOne(w)
	}
	return vac
}

// airToVacOne computes vac_wave = n * air_wave for a single wavelength in nm.
func airToVacOne(wave float64) float64 {
	// Convert to micrometers, then squared inverse wavenumber.
	waveUm := wave * 0.001
	ohm2 := (1.0 / waveUm) * (1.0 / waveUm)

	// Edlen 1966 refractive index with two resonance terms.
	n := 1 + 1e-8*(8342.13+2406030/(130.0-ohm2)+15997/(389.0-ohm2))

	return n * wave
}

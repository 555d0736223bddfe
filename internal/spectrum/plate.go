package spectrum

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

// PlateFileSuffix is the naming convention for plate flux files, prefixed by
// the plate identifier.
const PlateFileSuffix = "_sigma_sky_flux.json"

// Plate is one batch unit: many individually observed spectra recorded on
// the same plate.
type Plate struct {
	Plate   int        `json:"plate"`
	Spectra []Spectrum `json:"spectra"`
}

// LoadPlate reads one plate flux file.
func LoadPlate(path string) (*Plate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("spectrum").
			Category(errors.CategorySpectrumIO).
			FileContext(path, 0).
			Build()
	}

	plate := &Plate{}
	if err := json.Unmarshal(data, plate); err != nil {
		return nil, errors.New(err).
			Component("spectrum").
			Category(errors.CategorySpectrumIO).
			FileContext(path, int64(len(data))).
			Build()
	}

	return plate, nil
}

// Spectrum returns the spectrum with the given identifier, or false when the
// plate does not contain it.
func (p *Plate) Spectrum(specNo int) (*Spectrum, bool) {
	for i := range p.Spectra {
		if p.Spectra[i].SpecNo == specNo {
			return &p.Spectra[i], true
		}
	}
	return nil, false
}

// PlateFromFilename extracts the plate identifier from a plate flux file
// name following the <plate>_sigma_sky_flux.json convention.
func PlateFromFilename(path string) (int, error) {
	base := filepath.Base(path)
	id, ok := strings.CutSuffix(base, PlateFileSuffix)
	if !ok {
		return 0, errors.Newf("file name %s does not match the plate flux naming convention", base).
			Component("spectrum").
			Category(errors.CategoryValidation).
			Build()
	}

	plate, err := strconv.Atoi(id)
	if err != nil {
		return 0, errors.Newf("invalid plate identifier in file name %s", base).
			Component("spectrum").
			Category(errors.CategoryValidation).
			Build()
	}
	return plate, nil
}

// IsPlateFile reports whether a file name follows the plate flux naming
// convention.
func IsPlateFile(path string) bool {
	_, err := PlateFromFilename(path)
	return err == nil
}

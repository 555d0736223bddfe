package analysis

import (
	"time"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// ProcessPlateFile fits one plate flux file and persists the records. An
// explicitly named plate is always processed, even when the resume check
// would skip it during a directory scan.
func (p *Pipeline) ProcessPlateFile(path string) error {
	plateNo, err := spectrum.PlateFromFilename(path)
	if err != nil {
		return err
	}

	plate, err := spectrum.LoadPlate(path)
	if err != nil {
		return err
	}
	if plate.Plate == 0 {
		plate.Plate = plateNo
	}

	meta := p.Metadata.ForPlate(plateNo)
	if len(meta) == 0 {
		return errors.Newf("no metadata rows for plate %d", plateNo).
			Component("analysis").
			Category(errors.CategoryMetadata).
			Context("plate", plateNo).
			Build()
	}

	start := time.Now()
	records, err := p.Fitter.FitPlate(plate, meta)
	if err != nil {
		return err
	}

	p.saveMu.Lock()
	err = p.Store.Save(plateNo, records)
	p.saveMu.Unlock()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	if p.Metrics != nil {
		p.Metrics.Fitter.ObservePlateDuration(elapsed.Seconds())
	}
	if p.logger != nil {
		p.logger.Info("plate processed",
			"plate", plateNo,
			"spectra", len(records),
			"duration_ms", elapsed.Milliseconds())
	}
	return nil
}

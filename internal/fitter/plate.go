package fitter

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pfagrelius/skyfit-go/internal/airglow"
	"github.com/pfagrelius/skyfit-go/internal/conf"
	"github.com/pfagrelius/skyfit-go/internal/logging"
	"github.com/pfagrelius/skyfit-go/internal/observability/metrics"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// Record is the fitted decomposition of one spectrum on a plate. A record
// with empty component arrays and zero R2 marks a spectrum that could not
// be fitted, so a plate's output always covers every sampled spectrum.
type Record struct {
	Plate     int       `json:"plate"`
	SpecNo    int       `json:"specno"`
	Camera    string    `json:"camera"`
	Wave      []float64 `json:"wave"`
	Lines     []float64 `json:"lines"`
	Continuum []float64 `json:"cont"`
	Residual  []float64 `json:"resids"`
	R2        float64   `json:"r2"`
	// FitSeconds is the wall-clock duration of the regression.
	FitSeconds float64 `json:"fit_time"`
}

// PlateFitter fits a random sample of spectra from each plate, dispatching
// every spectrum to the line list and continuum order of its camera band.
type PlateFitter struct {
	lists      airglow.LineLists
	termsBlue  int
	termsRed   int
	maxSpectra int
	rngMu      sync.Mutex
	rng        *rand.Rand
	metrics    *metrics.FitterMetrics
	logger     *slog.Logger
}

// NewPlateFitter builds a fitter from the fit settings. A zero seed picks
// a time-based one, so repeated runs sample different spectra unless the
// seed is pinned.
func NewPlateFitter(cfg *conf.FitSettings, lists airglow.LineLists, m *metrics.FitterMetrics) *PlateFitter {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PlateFitter{
		lists:      lists,
		termsBlue:  cfg.ContinuumTermsBlue,
		termsRed:   cfg.ContinuumTermsRed,
		maxSpectra: cfg.MaxSpectra,
		rng:        rand.New(rand.NewSource(seed)),
		metrics:    m,
		logger:     logging.ForService("fitter"),
	}
}

// FitPlate decomposes a random sample of the plate's spectra and returns
// one record per sampled spectrum. Spectra with an unknown camera tag or
// missing from the plate file produce degenerate records; a regression
// failure aborts the whole plate, so a plate either gets a complete
// output unit or none.
func (pf *PlateFitter) FitPlate(plate *spectrum.Plate, meta []spectrum.MetaEntry) ([]Record, error) {
	sample := pf.sampleEntries(meta)
	records := make([]Record, 0, len(sample))

	for _, entry := range sample {
		record, err := pf.fitOne(plate, entry)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if pf.metrics != nil {
		pf.metrics.IncrementPlatesProcessed()
	}
	return records, nil
}

// sampleEntries draws up to maxSpectra metadata rows without replacement.
func (pf *PlateFitter) sampleEntries(meta []spectrum.MetaEntry) []spectrum.MetaEntry {
	if len(meta) <= pf.maxSpectra {
		out := make([]spectrum.MetaEntry, len(meta))
		copy(out, meta)
		return out
	}

	// the rng is shared across worker goroutines
	pf.rngMu.Lock()
	perm := pf.rng.Perm(len(meta))
	pf.rngMu.Unlock()
	out := make([]spectrum.MetaEntry, 0, pf.maxSpectra)
	for _, idx := range perm[:pf.maxSpectra] {
		out = append(out, meta[idx])
	}
	return out
}

func (pf *PlateFitter) fitOne(plate *spectrum.Plate, entry spectrum.MetaEntry) (Record, error) {
	lines, ok := pf.lists.ForCamera(entry.Camera)
	if !ok {
		if pf.logger != nil {
			pf.logger.Warn("unknown camera, emitting degenerate record",
				"plate", entry.Plate,
				"specno", entry.SpecNo,
				"camera", entry.Camera)
		}
		if pf.metrics != nil {
			pf.metrics.IncrementDegenerateRecords(entry.Camera)
		}
		return degenerateRecord(entry), nil
	}

	spec, found := plate.Spectrum(entry.SpecNo)
	if !found {
		if pf.logger != nil {
			pf.logger.Warn("spectrum missing from plate file, emitting degenerate record",
				"plate", entry.Plate,
				"specno", entry.SpecNo)
		}
		if pf.metrics != nil {
			pf.metrics.IncrementDegenerateRecords(entry.Camera)
		}
		return degenerateRecord(entry), nil
	}

	start := time.Now()
	result, err := LinearModel(spec, lines, pf.termsFor(entry.Camera))
	elapsed := time.Since(start)
	if err != nil {
		if pf.metrics != nil {
			pf.metrics.IncrementFitErrors(entry.Camera)
		}
		return Record{}, err
	}

	if pf.metrics != nil {
		pf.metrics.ObserveFitDuration(elapsed.Seconds())
		pf.metrics.IncrementSpectraFitted(entry.Camera)
	}
	if pf.logger != nil {
		pf.logger.Debug("spectrum fitted",
			"plate", entry.Plate,
			"specno", entry.SpecNo,
			"camera", entry.Camera,
			"samples", len(result.Wave),
			"r2", result.R2,
			"duration_ms", elapsed.Milliseconds())
	}

	return Record{
		Plate:      entry.Plate,
		SpecNo:     entry.SpecNo,
		Camera:     entry.Camera,
		Wave:       result.Wave,
		Lines:      result.Lines,
		Continuum:  result.Continuum,
		Residual:   result.Residual,
		R2:         result.R2,
		FitSeconds: elapsed.Seconds(),
	}, nil
}

func (pf *PlateFitter) termsFor(camera string) int {
	switch camera {
	case airglow.CameraBlue1, airglow.CameraBlue2:
		return pf.termsBlue
	default:
		return pf.termsRed
	}
}

func degenerateRecord(entry spectrum.MetaEntry) Record {
	return Record{
		Plate:     entry.Plate,
		SpecNo:    entry.SpecNo,
		Camera:    entry.Camera,
		Wave:      []float64{},
		Lines:     []float64{},
		Continuum: []float64{},
		Residual:  []float64{},
	}
}

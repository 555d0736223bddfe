// Package analysis wires the catalog, metadata, fitter and output sinks
// into the plate processing pipeline behind the CLI commands.
package analysis

import (
	"log/slog"
	"sync"

	"github.com/pfagrelius/skyfit-go/internal/airglow"
	"github.com/pfagrelius/skyfit-go/internal/conf"
	"github.com/pfagrelius/skyfit-go/internal/datastore"
	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/fitter"
	"github.com/pfagrelius/skyfit-go/internal/logging"
	"github.com/pfagrelius/skyfit-go/internal/observability"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// Pipeline holds everything needed to process plates: the line lists
// derived from the airglow catalog, the observation metadata, the fitter
// and the configured output sinks.
type Pipeline struct {
	Settings *conf.Settings
	Fitter   *fitter.PlateFitter
	Store    datastore.Store
	Metadata *spectrum.Metadata
	Metrics  *observability.Metrics

	// saveMu serializes plate saves; SQLite tolerates concurrent
	// readers but not concurrent writers.
	saveMu sync.Mutex
	logger *slog.Logger
}

// NewPipeline builds the pipeline from the application settings. It loads
// the airglow catalog and the observation metadata and opens the output
// sinks, so any configuration problem surfaces before the first plate.
func NewPipeline(settings *conf.Settings) (*Pipeline, error) {
	metrics, err := observability.NewMetrics()
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategorySystem).
			Build()
	}

	catalog, err := airglow.LoadCatalog(settings.Fit.CatalogDir)
	if err != nil {
		return nil, err
	}

	lists := airglow.BuildLineLists(catalog, settings.Fit.BlueIntensityMin, settings.Fit.RedIntensityMin)
	if len(lists.Blue) == 0 && len(lists.Red) == 0 {
		return nil, errors.Newf("airglow catalog in %s produced no usable lines", settings.Fit.CatalogDir).
			Component("analysis").
			Category(errors.CategoryCatalogLoad).
			Build()
	}

	metadata, err := spectrum.LoadMetadata(settings.Input.MetadataPath)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(settings, metrics)
	if err != nil {
		return nil, err
	}

	log := logging.ForService("analysis")
	if log != nil {
		log.Info("pipeline ready",
			"blue_lines", len(lists.Blue),
			"red_lines", len(lists.Red),
			"metadata_plates", len(metadata.Plates()))
	}

	return &Pipeline{
		Settings: settings,
		Fitter:   fitter.NewPlateFitter(&settings.Fit, lists, metrics.Fitter),
		Store:    store,
		Metadata: metadata,
		Metrics:  metrics,
		logger:   log,
	}, nil
}

// buildStore assembles the configured output sinks into a single store.
func buildStore(settings *conf.Settings, metrics *observability.Metrics) (datastore.Store, error) {
	var stores []datastore.Store
	var names []string

	if settings.Output.File.Enabled {
		stores = append(stores, datastore.NewFileStore(settings.Output.File.Path))
		names = append(names, "file")
	}
	if settings.Output.SQLite.Enabled {
		stores = append(stores, datastore.NewSQLiteStore(settings.Output.SQLite.Path))
		names = append(names, "sqlite")
	}
	if len(stores) == 0 {
		return nil, errors.Newf("no output sink enabled").
			Component("analysis").
			Category(errors.CategoryConfiguration).
			Build()
	}

	store := datastore.NewMultiStore(stores, names, metrics.Datastore)
	if err := store.Open(); err != nil {
		return nil, err
	}
	return store, nil
}

// Close releases the pipeline's output sinks.
func (p *Pipeline) Close() error {
	return p.Store.Close()
}

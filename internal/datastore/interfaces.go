package datastore

import "github.com/pfagrelius/skyfit-go/internal/fitter"

// Store is the interface the pipeline writes fit results through. A plate
// is the unit of persistence: records for one plate are saved together so
// a partially processed plate never looks complete to the resume check.
type Store interface {
	// Open prepares the store for writing.
	Open() error
	// Save persists all records for one plate.
	Save(plate int, records []fitter.Record) error
	// HasPlate reports whether output for the plate already exists.
	HasPlate(plate int) (bool, error)
	// Close releases the store's resources.
	Close() error
}

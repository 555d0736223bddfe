package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/fitter"
)

// FitFileSuffix is the naming convention for per-plate output files,
// prefixed by the plate identifier.
const FitFileSuffix = "_split_fit.json"

// FileStore writes one JSON file of fit records per plate.
type FileStore struct {
	dir string
}

// NewFileStore creates a store writing into the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Open creates the output directory if needed.
func (s *FileStore) Open() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("path", s.dir).
			Build()
	}
	return nil
}

// PlatePath returns the output file path for a plate.
func (s *FileStore) PlatePath(plate int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d%s", plate, FitFileSuffix))
}

// Save writes the plate's records to a temporary file and renames it into
// place, so the resume check never sees a half-written file.
func (s *FileStore) Save(plate int, records []fitter.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("plate", plate).
			Build()
	}

	final := s.PlatePath(plate)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			FileContext(tmp, int64(len(data))).
			Build()
	}
	if err := os.Rename(tmp, final); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			FileContext(final, int64(len(data))).
			Build()
	}
	return nil
}

// HasPlate reports whether the plate's output file already exists.
func (s *FileStore) HasPlate(plate int) (bool, error) {
	_, err := os.Stat(s.PlatePath(plate))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.New(err).
		Component("datastore").
		Category(errors.CategoryFileIO).
		Context("plate", plate).
		Build()
}

// GetPlate loads the records from the plate's output file.
func (s *FileStore) GetPlate(plate int) ([]fitter.Record, error) {
	data, err := os.ReadFile(s.PlatePath(plate))
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("plate", plate).
			Build()
	}

	var records []fitter.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("plate", plate).
			Build()
	}
	return records, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

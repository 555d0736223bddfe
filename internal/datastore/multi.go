package datastore

import (
	"time"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/fitter"
	"github.com/pfagrelius/skyfit-go/internal/observability/metrics"
)

// MultiStore fans writes out to every configured sink. A plate counts as
// complete only when every sink has it, so enabling a new sink re-runs
// plates the old sinks already hold.
type MultiStore struct {
	stores  []Store
	names   []string
	metrics *metrics.DatastoreMetrics
}

// NewMultiStore builds a store over the given sinks. The names slice
// labels each sink for metrics and must match stores in length.
func NewMultiStore(stores []Store, names []string, m *metrics.DatastoreMetrics) *MultiStore {
	return &MultiStore{stores: stores, names: names, metrics: m}
}

// Open opens every sink, failing on the first error.
func (s *MultiStore) Open() error {
	for _, st := range s.stores {
		if err := st.Open(); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the plate's records to every sink. All sinks are attempted
// even when one fails; the first error is returned.
func (s *MultiStore) Save(plate int, records []fitter.Record) error {
	var errs []error
	for i, st := range s.stores {
		start := time.Now()
		err := st.Save(plate, records)
		if s.metrics != nil {
			s.metrics.RecordSave(s.names[i], len(records), time.Since(start).Seconds(), err)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HasPlate reports whether every sink already holds the plate.
func (s *MultiStore) HasPlate(plate int) (bool, error) {
	for _, st := range s.stores {
		ok, err := st.HasPlate(plate)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return len(s.stores) > 0, nil
}

// Close closes every sink, returning the first error encountered.
func (s *MultiStore) Close() error {
	var errs []error
	for _, st := range s.stores {
		if err := st.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

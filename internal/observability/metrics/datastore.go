package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DatastoreMetrics contains Prometheus metrics for the fit result sinks.
type DatastoreMetrics struct {
	RecordsSaved  *prometheus.CounterVec
	SaveErrors    *prometheus.CounterVec
	SaveDuration  *prometheus.HistogramVec
	PlatesSkipped prometheus.Counter

	registry *prometheus.Registry
}

// NewDatastoreMetrics creates a new instance of DatastoreMetrics and
// registers it with the given registry.
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register datastore metrics: %w", err)
	}
	return m, nil
}

func (m *DatastoreMetrics) initMetrics() {
	m.RecordsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyfit_records_saved_total",
			Help: "Total number of fit records written, partitioned by sink.",
		},
		[]string{"sink"},
	)
	m.SaveErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyfit_save_errors_total",
			Help: "Total number of failed save operations, partitioned by sink.",
		},
		[]string{"sink"},
	)
	m.SaveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyfit_save_duration_seconds",
			Help:    "Time taken to persist one plate's records.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"sink"},
	)
	m.PlatesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyfit_plates_skipped_total",
			Help: "Total number of plates skipped because output already exists.",
		},
	)
}

// RecordSave counts one save operation and its outcome.
func (m *DatastoreMetrics) RecordSave(sink string, records int, durationSeconds float64, err error) {
	if err != nil {
		m.SaveErrors.WithLabelValues(sink).Inc()
		return
	}
	m.RecordsSaved.WithLabelValues(sink).Add(float64(records))
	m.SaveDuration.WithLabelValues(sink).Observe(durationSeconds)
}

// IncrementPlatesSkipped counts a plate skipped by the resume check.
func (m *DatastoreMetrics) IncrementPlatesSkipped() {
	m.PlatesSkipped.Inc()
}

// Describe implements the prometheus.Collector interface.
func (m *DatastoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.RecordsSaved.Describe(ch)
	m.SaveErrors.Describe(ch)
	m.SaveDuration.Describe(ch)
	m.PlatesSkipped.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *DatastoreMetrics) Collect(ch chan<- prometheus.Metric) {
	m.RecordsSaved.Collect(ch)
	m.SaveErrors.Collect(ch)
	m.SaveDuration.Collect(ch)
	m.PlatesSkipped.Collect(ch)
}

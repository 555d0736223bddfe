// Package metrics provides custom Prometheus metrics for the skyfit
// pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// FitterMetrics contains all Prometheus metrics related to spectrum
// fitting.
type FitterMetrics struct {
	PlatesProcessed   prometheus.Counter
	SpectraFitted     *prometheus.CounterVec
	FitErrors         *prometheus.CounterVec
	DegenerateRecords *prometheus.CounterVec
	FitDuration       prometheus.Histogram
	PlateDuration     prometheus.Histogram

	registry *prometheus.Registry
}

// NewFitterMetrics creates a new instance of FitterMetrics and registers
// it with the given registry.
func NewFitterMetrics(registry *prometheus.Registry) (*FitterMetrics, error) {
	m := &FitterMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register fitter metrics: %w", err)
	}
	return m, nil
}

func (m *FitterMetrics) initMetrics() {
	m.PlatesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyfit_plates_processed_total",
			Help: "Total number of plates fitted to completion.",
		},
	)
	m.SpectraFitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyfit_spectra_fitted_total",
			Help: "Total number of spectra fitted, partitioned by camera.",
		},
		[]string{"camera"},
	)
	m.FitErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyfit_fit_errors_total",
			Help: "Total number of regression failures, partitioned by camera.",
		},
		[]string{"camera"},
	)
	m.DegenerateRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyfit_degenerate_records_total",
			Help: "Total number of degenerate output records, partitioned by camera.",
		},
		[]string{"camera"},
	)
	m.FitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyfit_fit_duration_seconds",
			Help:    "Time taken to decompose a single spectrum.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)
	m.PlateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyfit_plate_duration_seconds",
			Help:    "Time taken to process a whole plate.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)
}

// IncrementPlatesProcessed counts a completed plate.
func (m *FitterMetrics) IncrementPlatesProcessed() {
	m.PlatesProcessed.Inc()
}

// IncrementSpectraFitted counts one successfully fitted spectrum.
func (m *FitterMetrics) IncrementSpectraFitted(camera string) {
	m.SpectraFitted.WithLabelValues(camera).Inc()
}

// IncrementFitErrors counts one regression failure.
func (m *FitterMetrics) IncrementFitErrors(camera string) {
	m.FitErrors.WithLabelValues(camera).Inc()
}

// IncrementDegenerateRecords counts one degenerate output record.
func (m *FitterMetrics) IncrementDegenerateRecords(camera string) {
	m.DegenerateRecords.WithLabelValues(camera).Inc()
}

// ObserveFitDuration records the wall time of one spectrum fit.
func (m *FitterMetrics) ObserveFitDuration(seconds float64) {
	m.FitDuration.Observe(seconds)
}

// ObservePlateDuration records the wall time of one plate.
func (m *FitterMetrics) ObservePlateDuration(seconds float64) {
	m.PlateDuration.Observe(seconds)
}

// Describe implements the prometheus.Collector interface.
func (m *FitterMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.PlatesProcessed.Describe(ch)
	m.SpectraFitted.Describe(ch)
	m.FitErrors.Describe(ch)
	m.DegenerateRecords.Describe(ch)
	m.FitDuration.Describe(ch)
	m.PlateDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *FitterMetrics) Collect(ch chan<- prometheus.Metric) {
	m.PlatesProcessed.Collect(ch)
	m.SpectraFitted.Collect(ch)
	m.FitErrors.Collect(ch)
	m.DegenerateRecords.Collect(ch)
	m.FitDuration.Collect(ch)
	m.PlateDuration.Collect(ch)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the counters of one command run. Each run gets its own
// registry so the textfile export only carries this run's samples.
type Recorder struct {
	registry *prometheus.Registry

	CatalogsValidated  *prometheus.CounterVec
	CatalogDuration    prometheus.Histogram
	StructuralFailures *prometheus.CounterVec
	RowsGenerated      *prometheus.CounterVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		CatalogsValidated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_validations_total",
				Help: "Total number of catalogs validated, by result",
			},
			[]string{"result"},
		),
		CatalogDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_validation_duration_seconds",
				Help:    "Duration of a single catalog validation in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		StructuralFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_structural_failures_total",
				Help: "Total number of runs aborted by IO, parse or schema errors",
			},
			[]string{"error_code"},
		),
		RowsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "personnel_rows_generated_total",
				Help: "Total number of personnel rows rendered",
			},
			[]string{"mode"},
		),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCatalog records one validation outcome.
func (r *Recorder) ObserveCatalog(valid bool, seconds float64) {
	if r == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	r.CatalogsValidated.WithLabelValues(result).Inc()
	r.CatalogDuration.Observe(seconds)
}

// ObserveStructuralFailure records an aborted run.
func (r *Recorder) ObserveStructuralFailure(code string) {
	if r == nil {
		return
	}
	r.StructuralFailures.WithLabelValues(code).Inc()
}

// ObserveRows records rendered rows for a generator mode.
func (r *Recorder) ObserveRows(mode string, n int) {
	if r == nil {
		return
	}
	r.RowsGenerated.WithLabelValues(mode).Add(float64(n))
}

// WriteTextfile exports the registry in the node_exporter textfile format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

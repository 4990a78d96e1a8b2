package docxbuilder

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

// Metrics counts imports, relationship dispositions and saves.
type Metrics struct {
	// ImportsTotal counts import attempts, labeled by result ("ok" or "error").
	ImportsTotal *prometheus.CounterVec
	// RelationshipsTotal counts merged relationships, labeled by disposition.
	RelationshipsTotal *prometheus.CounterVec
	// SavesTotal counts package builds, labeled by result.
	SavesTotal *prometheus.CounterVec
	// SaveDuration measures how long a package build takes.
	SaveDuration prometheus.Histogram
}

// NewMetrics creates the metrics and registers them with reg.
// A nil registerer creates unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ImportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docxbuilder_imports_total",
				Help: "Total number of imported documents",
			},
			[]string{"result"},
		),
		RelationshipsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docxbuilder_relationships_total",
				Help: "Total number of imported relationships written at save, by disposition",
			},
			[]string{"disposition"},
		),
		SavesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docxbuilder_saves_total",
				Help: "Total number of generated packages",
			},
			[]string{"result"},
		),
		SaveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "docxbuilder_save_duration_seconds",
				Help: "Duration of merging and serializing a package in seconds",
				// from small documents to large imported media
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
		),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) observeImport(err error) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) observeSave(report *splice.Report, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues(resultLabel(err)).Inc()
	m.SaveDuration.Observe(elapsed.Seconds())
	if report == nil || err != nil {
		return
	}
	for disposition, n := range report.Counts {
		m.RelationshipsTotal.WithLabelValues(string(disposition)).Add(float64(n))
	}
}

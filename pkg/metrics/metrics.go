// Package metrics records scoring activity as Prometheus metrics.
//
// Each Recorder owns its registry so the generator can dump a text snapshot
// after a run and the server can expose it on /metrics without touching the
// process-wide default registry.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

const namespace = "wss"

// Recorder holds the scoring collectors and the registry they live in.
type Recorder struct {
	reg *prometheus.Registry

	RecordsScored  *prometheus.CounterVec
	InvalidRecords *prometheus.CounterVec
	ScoreDist      prometheus.Histogram
	BatchDuration  *prometheus.HistogramVec
	DatasetsHeld   prometheus.Gauge
}

// New returns a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		RecordsScored: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_scored_total",
				Help:      "Total number of workload records scored, by stress level",
			},
			[]string{"level"},
		),
		InvalidRecords: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalid_records_total",
				Help:      "Total number of records rejected, by attribute and reason",
			},
			[]string{"attribute", "reason"},
		),
		ScoreDist: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Distribution of workload stress scores",
				Buckets:   prometheus.LinearBuckets(stress.MinScore, 3, 7),
			},
		),
		BatchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Duration of batch scoring in seconds",
			},
			[]string{"source"},
		),
		DatasetsHeld: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "datasets_held",
				Help:      "Number of generated datasets currently held in memory",
			},
		),
	}
}

// ObserveScored counts scored records by level and feeds the score histogram.
func (r *Recorder) ObserveScored(records ...types.ScoredRecord) {
	for _, rec := range records {
		r.RecordsScored.WithLabelValues(string(rec.Level)).Inc()
		r.ScoreDist.Observe(float64(rec.Score))
	}
}

// ObserveError counts err if it is an InvalidAttributeError. Other errors
// are ignored.
func (r *Recorder) ObserveError(err error) {
	var ie *stress.InvalidAttributeError
	if errors.As(err, &ie) {
		r.InvalidRecords.WithLabelValues(string(ie.Attribute), ie.Reason).Inc()
	}
}

// ObserveBatch records how long a batch from source took since start.
func (r *Recorder) ObserveBatch(source string, start time.Time) {
	r.BatchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gather returns the current metric families.
func (r *Recorder) Gather() ([]*dto.MetricFamily, error) {
	return r.reg.Gather()
}

// WriteText writes every metric family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

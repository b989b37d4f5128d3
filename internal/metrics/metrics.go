// Package metrics records evaluation counters in a Prometheus registry and
// writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects credaudit metrics. The zero value is not usable; use New.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	evaluations       *prometheus.CounterVec
	verdicts          *prometheus.CounterVec
	violations        prometheus.Counter
	predictorDuration *prometheus.HistogramVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credaudit_evaluations_total",
				Help: "Eligibility evaluations by academic status and risk level",
			},
			[]string{"program", "status", "risk"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credaudit_verdicts_total",
				Help: "Eligibility verdicts by outcome",
			},
			[]string{"outcome"},
		),
		violations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "credaudit_time_window_violations_total",
				Help: "Academic time-window violations detected",
			},
		),
		predictorDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credaudit_predictor_duration_seconds",
				Help:    "Classifier call duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"predictor"},
		),
	}
	r.registry.MustRegister(r.evaluations, r.verdicts, r.violations, r.predictorDuration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveEvaluation counts one evaluation result.
func (r *Recorder) ObserveEvaluation(program, status, risk string) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(program, status, risk).Inc()
}

// ObserveVerdict counts one verdict and its time-window violations.
func (r *Recorder) ObserveVerdict(outcome string, violations int) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(outcome).Inc()
	r.violations.Add(float64(violations))
}

// ObservePredictor records how long a classifier call took.
func (r *Recorder) ObservePredictor(name string, d time.Duration) {
	if r == nil {
		return
	}
	r.predictorDuration.WithLabelValues(name).Observe(d.Seconds())
}

// WriteFile writes all metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

// Package metrics exposes Prometheus metrics for the intake pipeline.
package metrics

import (
	"net/http"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Collector holds the intake metrics.
type Collector struct {
	Validations        *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	GenerationAttempts *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewWithRegistry registers the collector on a custom registry.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "intake",
				Name:      "validations_total",
				Help:      "AI responses validated, by outcome and failure kind",
			},
			[]string{"outcome", "kind"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "intake",
				Name:      "validation_duration_seconds",
				Help:      "Time spent validating one AI response",
				Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"outcome"},
		),
		GenerationAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "intake",
				Name:      "generation_attempts_total",
				Help:      "Prompts sent to the content service, by content kind",
			},
			[]string{"content_kind"},
		),
		gatherer: gatherer,
	}
}

// Observe implements intake.Recorder.
func (c *Collector) Observe(result models.IntakeResult) {
	outcome := OutcomeAccepted
	if !result.Accepted {
		outcome = OutcomeRejected
	}

	c.Validations.WithLabelValues(outcome, string(result.Kind)).Inc()
	c.ValidationDuration.WithLabelValues(outcome).Observe(result.Duration.Seconds())
}

// ObserveAttempt implements generate.AttemptRecorder.
func (c *Collector) ObserveAttempt(kind models.ContentKind) {
	c.GenerationAttempts.WithLabelValues(string(kind)).Inc()
}

// Handler serves the metrics of the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Package metrics exports validation outcomes to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gopatchy/jsv"
)

// Observer is a [jsv.Observer] that records every validation call.
//
// Metrics:
//   - jsv_validations_total: validation calls by schema and outcome
//   - jsv_validation_errors_total: recorded errors by schema and attribute
//   - jsv_validation_duration_seconds: time spent per call, by schema
type Observer struct {
	registry *prometheus.Registry

	validationsTotal   *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them with registry, or with a fresh
// registry when nil.
func New(registry *prometheus.Registry) *Observer {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	o := &Observer{
		registry: registry,

		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsv",
				Name:      "validations_total",
				Help:      "Total number of validation calls",
			},
			[]string{"schema", "valid"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsv",
				Name:      "validation_errors_total",
				Help:      "Total number of recorded validation errors",
			},
			[]string{"schema", "attribute"},
		),

		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jsv",
				Name:      "validation_duration_seconds",
				Help:      "Duration of validation calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12), // 1µs to ~4s
			},
			[]string{"schema"},
		),
	}

	registry.MustRegister(
		o.validationsTotal,
		o.errorsTotal,
		o.validationDuration,
	)

	return o
}

func (o *Observer) ObserveValidation(id string, report *jsv.Report, elapsed time.Duration) {
	o.validationsTotal.WithLabelValues(id, strconv.FormatBool(report.Valid)).Inc()

	for _, e := range report.Errors {
		o.errorsTotal.WithLabelValues(id, e.Attribute).Inc()
	}

	o.validationDuration.WithLabelValues(id).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

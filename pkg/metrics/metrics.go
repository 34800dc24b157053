package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Conversion outcome labels
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ConversionMetrics exposes counters/histograms for report conversions.
// A nil *ConversionMetrics records nothing.
type ConversionMetrics struct {
	total          *prometheus.CounterVec
	duration       prometheus.Histogram
	doctorsWritten prometheus.Histogram
}

// NewConversionMetrics registers the collectors on reg, or the default registerer when nil
func NewConversionMetrics(reg prometheus.Registerer) *ConversionMetrics {
	m := &ConversionMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arztliste",
			Name:      "conversion_total",
			Help:      "Total report conversions by outcome",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arztliste",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of report conversions",
			Buckets:   prometheus.DefBuckets,
		}),
		doctorsWritten: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arztliste",
			Name:      "doctors_written",
			Help:      "Doctors written per successful conversion",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.total, m.duration, m.doctorsWritten)
	return m
}

// ObserveSuccess records a completed conversion
func (m *ConversionMetrics) ObserveSuccess(elapsed time.Duration, doctors int) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(StatusSuccess).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.doctorsWritten.Observe(float64(doctors))
}

// ObserveFailure records an aborted conversion
func (m *ConversionMetrics) ObserveFailure(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(StatusFailure).Inc()
	m.duration.Observe(elapsed.Seconds())
}

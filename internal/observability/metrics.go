package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	loginAttemptsTotal   *prometheus.CounterVec
	paperUploadsTotal    *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ibplan_login_attempts_total",
			Help: "Total number of login attempts, labelled by outcome.",
		}, []string{"outcome"})

		paperUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ibplan_paper_uploads_total",
			Help: "Total number of past-paper uploads, labelled by detected media type.",
		}, []string{"media_type"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibplan_upload_latency_seconds",
			Help:    "Latency distribution of the paper upload commit path.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		})

		prometheus.MustRegister(loginAttemptsTotal, paperUploadsTotal, uploadLatencySeconds)
	})
}

// LoginAttempts exposes the login outcome counter.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttemptsTotal
}

// PaperUploads exposes the upload counter.
func PaperUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return paperUploadsTotal
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

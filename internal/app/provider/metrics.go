package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes per-provider transcription counters to prometheus.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	audioSeconds    *prometheus.CounterVec
}

// NewMetrics registers the provider metrics on the given registerer.
// Pass prometheus.DefaultRegisterer outside of tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audioscribe_transcriptions_total",
			Help: "Transcription requests by provider and outcome.",
		}, []string{"provider", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audioscribe_transcription_duration_seconds",
			Help:    "Wall-clock time spent per transcription call.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}, []string{"provider"}),
		audioSeconds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audioscribe_audio_seconds_total",
			Help: "Seconds of audio successfully transcribed per provider.",
		}, []string{"provider"}),
	}
}

// RecordSuccess records a successful transcription.
func (m *Metrics) RecordSuccess(provider string, latency time.Duration, audioLengthSec float64) {
	m.requestsTotal.WithLabelValues(provider, "success").Inc()
	m.requestDuration.WithLabelValues(provider).Observe(latency.Seconds())
	if audioLengthSec > 0 {
		m.audioSeconds.WithLabelValues(provider).Add(audioLengthSec)
	}
}

// RecordFailure records a failed transcription.
func (m *Metrics) RecordFailure(provider string, errorType string) {
	m.requestsTotal.WithLabelValues(provider, errorType).Inc()
}

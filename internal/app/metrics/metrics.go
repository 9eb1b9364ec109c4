package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "subtitle_whisper"

// Metrics holds the collectors updated by the orchestrator
type Metrics struct {
	Uploads               *prometheus.CounterVec
	Conversions           *prometheus.CounterVec
	ConversionCacheHits   prometheus.Counter
	Transcriptions        *prometheus.CounterVec
	TranscriptionCacheHit *prometheus.CounterVec
	TranscriptionLatency  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploads received, by media kind.",
		}, []string{"kind"}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Audio extractions run, by outcome.",
		}, []string{"outcome"}),
		ConversionCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_cache_hits_total",
			Help:      "Uploads whose content matched the cached audio.",
		}),
		Transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Transcription requests sent upstream, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		TranscriptionCacheHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_cache_hits_total",
			Help:      "Transcriptions answered from the session cache, by mode.",
		}, []string{"mode"}),
		TranscriptionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_duration_seconds",
			Help:      "Upstream transcription latency.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		}, []string{"mode"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Uploads,
			m.Conversions,
			m.ConversionCacheHits,
			m.Transcriptions,
			m.TranscriptionCacheHit,
			m.TranscriptionLatency,
		)
	}
	return m
}

// ObserveTranscription records one upstream call
func (m *Metrics) ObserveTranscription(mode string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Transcriptions.WithLabelValues(mode, outcome).Inc()
	m.TranscriptionLatency.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

// ObserveConversion records one audio extraction
func (m *Metrics) ObserveConversion(err error) {
	if err != nil {
		m.Conversions.WithLabelValues("failure").Inc()
		return
	}
	m.Conversions.WithLabelValues("success").Inc()
}

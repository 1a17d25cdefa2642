// Package metrics collects run statistics for transcript processing and
// metadata generation.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns a private registry so every run starts from zero.
type Metrics struct {
	registry *prometheus.Registry

	// transcriptsParsed counts loaded transcripts.
	// Labels:
	//   - format: detected layout (e.g., "srt", "time-range", "plain")
	transcriptsParsed *prometheus.CounterVec

	// segmentsParsed counts segments produced by the builders.
	segmentsParsed prometheus.Counter

	// repairWarnings counts warnings raised while normalizing segments.
	repairWarnings prometheus.Counter

	// srtViolations counts validator findings.
	srtViolations prometheus.Counter

	// generationRequests counts assistant requests.
	// Labels:
	//   - kind: metadata kind (e.g., "titles", "chapters")
	//   - status: "success" or "failed"
	generationRequests *prometheus.CounterVec

	// generationDuration records assistant round trips in seconds.
	// Buckets: 0.5s, 1s, 2s, 5s, 10s, 30s, 60s, 120s
	generationDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transcriptsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podmeta_transcripts_parsed_total",
				Help: "Total number of transcripts parsed, by detected format",
			},
			[]string{"format"},
		),
		segmentsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podmeta_segments_parsed_total",
			Help: "Total number of transcript segments produced",
		}),
		repairWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podmeta_repair_warnings_total",
			Help: "Total number of warnings raised while repairing segments",
		}),
		srtViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podmeta_srt_violations_total",
			Help: "Total number of SRT validation violations found",
		}),
		generationRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podmeta_generation_requests_total",
				Help: "Total number of assistant requests",
			},
			[]string{"kind", "status"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "podmeta_generation_duration_seconds",
				Help:    "Duration of assistant requests in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"kind"},
		),
	}

	m.registry.MustRegister(
		m.transcriptsParsed,
		m.segmentsParsed,
		m.repairWarnings,
		m.srtViolations,
		m.generationRequests,
		m.generationDuration,
	)
	return m
}

// RecordTranscript records one parsed transcript and its segment count.
func (m *Metrics) RecordTranscript(format string, segments int) {
	m.transcriptsParsed.WithLabelValues(format).Inc()
	m.segmentsParsed.Add(float64(segments))
}

func (m *Metrics) RecordRepairWarnings(n int) {
	m.repairWarnings.Add(float64(n))
}

func (m *Metrics) RecordSRTViolations(n int) {
	m.srtViolations.Add(float64(n))
}

// ObserveGeneration records one assistant request.
func (m *Metrics) ObserveGeneration(kind string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.generationRequests.WithLabelValues(kind, status).Inc()
	m.generationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric in the text exposition format, ready for
// the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

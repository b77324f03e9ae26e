package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wordsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordforge_words_emitted_total",
			Help: "Total number of words written to the output sink",
		},
		[]string{"mode"}, // "combinations", "pattern" or "permutations"
	)

	checkpointsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordforge_checkpoints_saved_total",
			Help: "Total number of session checkpoints persisted",
		},
	)

	flushDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordforge_flush_duration_seconds",
			Help:    "Output buffer flush duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		},
	)

	runsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordforge_runs_total",
			Help: "Total number of runs by terminal outcome",
		},
		[]string{"outcome"}, // "completed", "paused" or "failed"
	)
)

// Collector provides convenience methods for recording run metrics.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a new metrics collector.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// AddWords records words written for a generation mode.
func (c *Collector) AddWords(mode string, n int) {
	wordsEmitted.WithLabelValues(mode).Add(float64(n))
}

// RecordCheckpoint increments the checkpoint counter.
func (c *Collector) RecordCheckpoint() {
	checkpointsSaved.Inc()
}

// ObserveFlush records an output flush duration.
func (c *Collector) ObserveFlush(d time.Duration) {
	flushDuration.Observe(d.Seconds())
}

// RecordRun records a terminal run outcome.
func (c *Collector) RecordRun(outcome string) {
	runsFinished.WithLabelValues(outcome).Inc()
}

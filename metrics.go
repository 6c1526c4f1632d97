package imgeval

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// observability.PrometheusCollector for a Prometheus implementation.
type MetricsCollector interface {
	// RecordExtraction is called after each image that produced a feature row.
	// duration covers read, decode, preprocessing and embedding.
	RecordExtraction(duration time.Duration)

	// RecordSkip is called for each image excluded from a feature matrix.
	RecordSkip(err error)

	// RecordMetric is called after each metric computation. value is
	// meaningful only when err is nil.
	RecordMetric(metric string, value float64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExtraction(time.Duration)                     {}
func (NoopMetricsCollector) RecordSkip(error)                                   {}
func (NoopMetricsCollector) RecordMetric(string, float64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExtractionCount      atomic.Int64
	ExtractionTotalNanos atomic.Int64
	SkipCount            atomic.Int64
	MetricCount          atomic.Int64
	MetricErrors         atomic.Int64
	MetricTotalNanos     atomic.Int64
}

// RecordExtraction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtraction(duration time.Duration) {
	b.ExtractionCount.Add(1)
	b.ExtractionTotalNanos.Add(duration.Nanoseconds())
}

// RecordSkip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkip(error) {
	b.SkipCount.Add(1)
}

// RecordMetric implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMetric(_ string, _ float64, duration time.Duration, err error) {
	b.MetricCount.Add(1)
	b.MetricTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MetricErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExtractionCount:    b.ExtractionCount.Load(),
		ExtractionAvgNanos: avg(b.ExtractionTotalNanos.Load(), b.ExtractionCount.Load()),
		SkipCount:          b.SkipCount.Load(),
		MetricCount:        b.MetricCount.Load(),
		MetricErrors:       b.MetricErrors.Load(),
		MetricAvgNanos:     avg(b.MetricTotalNanos.Load(), b.MetricCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ExtractionCount    int64
	ExtractionAvgNanos int64
	SkipCount          int64
	MetricCount        int64
	MetricErrors       int64
	MetricAvgNanos     int64
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements imgeval.MetricsCollector.
type PrometheusCollector struct {
	extractionLatency prometheus.Histogram
	images            *prometheus.CounterVec
	metricLatency     *prometheus.HistogramVec
	metricValue       *prometheus.GaugeVec
}

// NewPrometheusCollector creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	p := &PrometheusCollector{
		extractionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgeval_image_extraction_seconds",
			Help:    "Latency of reading, decoding and embedding one image",
			Buckets: prometheus.DefBuckets,
		}),
		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imgeval_images_total",
			Help: "Images seen by feature builders",
		}, []string{"status"}),
		metricLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imgeval_metric_duration_seconds",
			Help:    "Latency of metric computations, excluding feature extraction",
			Buckets: prometheus.DefBuckets,
		}, []string{"metric", "status"}),
		metricValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "imgeval_metric_value",
			Help: "Most recent successfully computed value per metric",
		}, []string{"metric"}),
	}

	if reg != nil {
		reg.MustRegister(p.extractionLatency, p.images, p.metricLatency, p.metricValue)
	}
	return p
}

// RecordExtraction implements imgeval.MetricsCollector.
func (p *PrometheusCollector) RecordExtraction(d time.Duration) {
	p.extractionLatency.Observe(d.Seconds())
	p.images.WithLabelValues("processed").Inc()
}

// RecordSkip implements imgeval.MetricsCollector.
func (p *PrometheusCollector) RecordSkip(error) {
	p.images.WithLabelValues("skipped").Inc()
}

// RecordMetric implements imgeval.MetricsCollector.
func (p *PrometheusCollector) RecordMetric(metric string, value float64, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metricLatency.WithLabelValues(metric, status).Observe(d.Seconds())
	if err == nil {
		p.metricValue.WithLabelValues(metric).Set(value)
	}
}

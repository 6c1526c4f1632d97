// Package observability exports imgeval operational metrics to Prometheus.
//
// # Usage
//
//	collector := observability.NewPrometheusCollector(prometheus.DefaultRegisterer)
//	ev := imgeval.New(embedder, imgeval.WithMetricsCollector(collector))
//
//	http.Handle("/metrics", promhttp.Handler())
package observability

package imgeval

import (
	"log/slog"

	"github.com/hupe1980/imgeval/distributional"
	"github.com/hupe1980/imgeval/face"
	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	resource         *resource.Controller
	cache            *feature.Cache
	faceEncoder      face.Encoder
	kidOptions       []func(*distributional.KIDOptions)
	fidOptions       []func(*distributional.FIDOptions)
	builderOptions   []func(*feature.BuilderOptions)
}

// Option configures an Evaluator.
type Option func(*options)

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := imgeval.NewJSONLogger(slog.LevelInfo)
//	ev := imgeval.New(embedder, imgeval.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &imgeval.BasicMetricsCollector{}
//	ev := imgeval.New(embedder, imgeval.WithMetricsCollector(metrics))
//	// ... evaluate ...
//	stats := metrics.GetStats()
//	fmt.Printf("Images: %d, Skipped: %d\n", stats.ExtractionCount, stats.SkipCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithResourceConfig bounds memory, read concurrency and IO throughput of
// image reads.
func WithResourceConfig(cfg resource.Config) Option {
	return func(o *options) {
		o.resource = resource.NewController(cfg)
	}
}

// WithResourceController shares an existing controller between evaluators.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

// WithFeatureCache enables the feature cache for image sets with a CacheKey.
//
// Example:
//
//	cacheStore := blobstore.NewLocalStore("./.imgeval-cache")
//	ev := imgeval.New(embedder, imgeval.WithFeatureCache(cacheStore, func(o *feature.CacheOptions) {
//	    o.Compression = feature.CompressionLZ4
//	}))
func WithFeatureCache(store BlobStore, optFns ...func(*feature.CacheOptions)) Option {
	return func(o *options) {
		if store == nil {
			o.cache = nil
			return
		}
		o.cache = feature.NewCache(store, optFns...)
	}
}

// WithFaceEncoder sets the encoder used by FaceVerification.
func WithFaceEncoder(enc face.Encoder) Option {
	return func(o *options) {
		o.faceEncoder = enc
	}
}

// WithKID sets default KID options. Per-call options are applied after these.
func WithKID(optFns ...func(*distributional.KIDOptions)) Option {
	return func(o *options) {
		o.kidOptions = append(o.kidOptions, optFns...)
	}
}

// WithFID sets FID options.
//
// Example with strict residue checking:
//
//	ev := imgeval.New(embedder, imgeval.WithFID(func(o *distributional.FIDOptions) {
//	    o.Strict = true
//	}))
func WithFID(optFns ...func(*distributional.FIDOptions)) Option {
	return func(o *options) {
		o.fidOptions = append(o.fidOptions, optFns...)
	}
}

// WithBuilder sets feature builder options, e.g. accepted extensions or the
// resize interpolator. ImageSet.Recursive always takes precedence.
func WithBuilder(optFns ...func(*feature.BuilderOptions)) Option {
	return func(o *options) {
		o.builderOptions = append(o.builderOptions, optFns...)
	}
}

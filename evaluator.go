package imgeval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/imgeval/blobstore"
	"github.com/hupe1980/imgeval/distributional"
	"github.com/hupe1980/imgeval/face"
	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/mask"
	"github.com/hupe1980/imgeval/overlap"
	"github.com/hupe1980/imgeval/ranking"
)

// BlobStore is the storage abstraction image sets and the feature cache live in.
type BlobStore = blobstore.BlobStore

// ImageSet names a directory of images inside a blob store.
type ImageSet struct {
	Store BlobStore
	// Prefix is the directory inside Store; empty means the store root.
	Prefix string
	// Recursive includes images in nested directories.
	Recursive bool
	// CacheKey, when set and a feature cache is configured, stores and reuses
	// the extracted matrix under this key.
	CacheKey string
}

// Dir returns an ImageSet for a local directory.
func Dir(path string, recursive bool) ImageSet {
	return ImageSet{Store: blobstore.NewLocalStore(path), Recursive: recursive}
}

func (s ImageSet) source() string {
	if ls, ok := s.Store.(*blobstore.LocalStore); ok {
		if s.Prefix == "" {
			return ls.Root()
		}
		return ls.Root() + "/" + s.Prefix
	}
	return s.Prefix
}

// Evaluator computes image quality metrics over image sets.
// An Evaluator is safe for concurrent use if its embedder and encoder are.
type Evaluator struct {
	embedder feature.Embedder
	opts     options
	logger   *Logger
	metrics  MetricsCollector
}

// New creates an Evaluator. embedder may be nil when only face verification
// is needed; feature-based operations then return ErrNoEmbedder.
func New(embedder feature.Embedder, optFns ...Option) *Evaluator {
	var opts options
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.logger
	if logger == nil {
		logger = NoopLogger()
	}

	mc := opts.metricsCollector
	if mc == nil {
		mc = NoopMetricsCollector{}
	}

	return &Evaluator{
		embedder: embedder,
		opts:     opts,
		logger:   logger,
		metrics:  mc,
	}
}

// Features builds the feature matrix of set, using the feature cache when
// configured and set.CacheKey is non-empty.
func (e *Evaluator) Features(ctx context.Context, set ImageSet) (*feature.Matrix, feature.Report, error) {
	report := feature.Report{Source: set.source()}

	if e.embedder == nil {
		return nil, report, ErrNoEmbedder
	}
	if set.Store == nil {
		return nil, report, errors.New("imgeval: image set has no store")
	}

	cache := e.opts.cache
	if cache != nil && set.CacheKey != "" {
		m, ok, err := cache.Load(ctx, set.CacheKey)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, report, ctxErr
			}
			e.logger.LogCache(ctx, set.CacheKey, "load", err)
		case ok && !m.Empty():
			e.logger.LogCache(ctx, set.CacheKey, "hit", nil)
			return m, report, nil
		}
	}

	start := time.Now()
	m, report, err := e.builder(ctx, set).Build(ctx, set.Store, set.Prefix)
	report.Source = set.source()
	if err != nil {
		var empty *EmptyInputError
		if errors.As(err, &empty) {
			empty.Source = set.source()
		}
	}
	e.logger.LogExtraction(ctx, report.Source, m.Rows(), len(report.Skipped), time.Since(start), err)
	if err != nil {
		return nil, report, err
	}

	if cache != nil && set.CacheKey != "" {
		err := cache.Store(ctx, set.CacheKey, m)
		e.logger.LogCache(ctx, set.CacheKey, "store", err)
	}

	return m, report, nil
}

func (e *Evaluator) builder(ctx context.Context, set ImageSet) *feature.Builder {
	return feature.NewBuilder(e.embedder, func(o *feature.BuilderOptions) {
		for _, fn := range e.opts.builderOptions {
			fn(o)
		}
		o.Recursive = set.Recursive
		o.Resource = e.opts.resource
		o.OnProcessed = func(_ string, elapsed time.Duration) {
			e.metrics.RecordExtraction(elapsed)
		}
		o.OnSkipped = func(name string, err error) {
			e.logger.LogSkip(ctx, name, err)
			e.metrics.RecordSkip(err)
		}
	})
}

func (e *Evaluator) pair(ctx context.Context, real, gen ImageSet) (*feature.Matrix, *feature.Matrix, error) {
	rm, _, err := e.Features(ctx, real)
	if err != nil {
		return nil, nil, fmt.Errorf("real images: %w", err)
	}
	gm, _, err := e.Features(ctx, gen)
	if err != nil {
		return nil, nil, fmt.Errorf("generated images: %w", err)
	}
	return rm, gm, nil
}

// FID computes the Fréchet Inception Distance between two image sets.
func (e *Evaluator) FID(ctx context.Context, real, gen ImageSet) (distributional.FIDResult, error) {
	rm, gm, err := e.pair(ctx, real, gen)
	if err != nil {
		return distributional.FIDResult{}, err
	}

	start := time.Now()
	res, err := distributional.FID(rm, gm, e.fidOptions()...)
	e.record(ctx, "fid", res.Distance, start, err)
	return res, err
}

func (e *Evaluator) fidOptions() []func(*distributional.FIDOptions) {
	logger := e.logger.WithMetric("fid").Logger
	return append([]func(*distributional.FIDOptions){
		func(o *distributional.FIDOptions) { o.Logger = logger },
	}, e.opts.fidOptions...)
}

// KID computes the Kernel Inception Distance between two image sets.
// optFns are applied after the evaluator's WithKID defaults.
func (e *Evaluator) KID(ctx context.Context, real, gen ImageSet, optFns ...func(*distributional.KIDOptions)) (distributional.KIDResult, error) {
	rm, gm, err := e.pair(ctx, real, gen)
	if err != nil {
		return distributional.KIDResult{}, err
	}

	fns := append(append([]func(*distributional.KIDOptions){}, e.opts.kidOptions...), optFns...)

	start := time.Now()
	res, err := distributional.KID(rm, gm, fns...)
	e.record(ctx, "kid", res.Value, start, err)
	return res, err
}

// FaceVerification computes the mean face descriptor distance over pairs
// with the encoder set by WithFaceEncoder.
func (e *Evaluator) FaceVerification(ctx context.Context, pairs []face.Pair) (face.Result, error) {
	if e.opts.faceEncoder == nil {
		return face.Result{}, ErrNoFaceEncoder
	}

	start := time.Now()
	res, err := face.Verify(ctx, e.opts.faceEncoder, pairs, func(o *face.Options) {
		o.Logger = e.logger.WithMetric("fvv").Logger
	})
	e.record(ctx, "fvv", res.Mean, start, err)
	return res, err
}

// MeanIoU computes mIoU and records it like the other metrics.
func (e *Evaluator) MeanIoU(ctx context.Context, pred, truth mask.LabelGrid, numClasses int) (overlap.Result, error) {
	start := time.Now()
	res, err := MeanIoU(pred, truth, numClasses)
	e.record(ctx, "miou", res.Float64(), start, err)
	return res, err
}

// AveragePrecision computes AP and records it like the other metrics.
func (e *Evaluator) AveragePrecision(ctx context.Context, samples []ranking.Sample) (float64, error) {
	start := time.Now()
	ap, err := AveragePrecision(samples)
	e.record(ctx, "ap", ap, start, err)
	return ap, err
}

func (e *Evaluator) record(ctx context.Context, metric string, value float64, start time.Time, err error) {
	e.metrics.RecordMetric(metric, value, time.Since(start), err)
	e.logger.LogMetric(ctx, metric, value, err)
}

// AveragePrecision returns the mean over samples of the area under the
// class-blended precision/recall curve. Empty input yields 0.
func AveragePrecision(samples []ranking.Sample) (float64, error) {
	return ranking.AveragePrecision(samples)
}

// MeanIoU computes the mean Intersection over Union of pred against truth
// over classes [0, numClasses). Classes absent from both grids are ignored;
// if every class is absent the result is undefined.
func MeanIoU(pred, truth mask.LabelGrid, numClasses int) (overlap.Result, error) {
	return overlap.MeanIoU(pred, truth, numClasses)
}

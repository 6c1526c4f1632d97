package feature

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/imgeval/blobstore"
	"github.com/hupe1980/imgeval/resource"
	"golang.org/x/image/draw"
)

// DefaultExtensions are the file extensions considered images.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Recursive includes images in nested directories below the prefix.
	Recursive bool

	// Extensions lists accepted file extensions, matched case-insensitively.
	// Default: DefaultExtensions.
	Extensions []string

	// Logger receives per-file warnings. Nil discards them.
	Logger *slog.Logger

	// Resource bounds read concurrency, memory and IO. Nil means unlimited.
	Resource *resource.Controller

	// Interpolator used for resizing. Default: draw.BiLinear.
	Interpolator draw.Interpolator

	// OnProcessed is called after each successfully embedded file.
	OnProcessed func(name string, elapsed time.Duration)

	// OnSkipped is called for each file that was skipped.
	OnSkipped func(name string, err error)
}

// DefaultBuilderOptions returns the default options.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		Extensions:   DefaultExtensions,
		Interpolator: draw.BiLinear,
	}
}

// Skipped describes a file that did not contribute a row.
type Skipped struct {
	Name string
	Err  error
}

// Report summarizes one Build call.
type Report struct {
	Source    string
	Listed    []string // candidate image files, in processing order
	Processed []string // files that produced a row, in row order
	Skipped   []Skipped
}

// Builder extracts feature matrices from image sets.
// A Builder is safe for concurrent use if its Embedder is.
type Builder struct {
	embedder Embedder
	opts     BuilderOptions
	logger   *slog.Logger
	exts     map[string]struct{}
}

// NewBuilder creates a Builder around embedder.
func NewBuilder(embedder Embedder, optFns ...func(o *BuilderOptions)) *Builder {
	opts := DefaultBuilderOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = struct{}{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Builder{
		embedder: embedder,
		opts:     opts,
		logger:   logger,
		exts:     exts,
	}
}

// Options returns the effective options.
func (b *Builder) Options() BuilderOptions {
	return b.opts
}

// Candidates lists the image files under prefix in lexicographic order.
// The prefix names a directory; a trailing slash is optional.
func (b *Builder) Candidates(ctx context.Context, store blobstore.BlobStore, prefix string) ([]string, error) {
	dir := strings.TrimSuffix(prefix, "/")
	listPrefix := ""
	if dir != "" && dir != "." {
		listPrefix = dir + "/"
	}

	names, err := store.List(ctx, listPrefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	var out []string
	for _, name := range names {
		rest, ok := strings.CutPrefix(name, listPrefix)
		if !ok || rest == "" {
			continue
		}
		if !b.opts.Recursive && strings.Contains(rest, "/") {
			continue
		}
		if _, ok := b.exts[strings.ToLower(path.Ext(name))]; !ok {
			continue
		}
		out = append(out, name)
	}

	return out, nil
}

// Build embeds every image under prefix and stacks the vectors into a Matrix.
//
// Files that fail to read, decode or embed are logged and skipped. If no file
// produces a row, Build returns an *EmptyInputError. Vectors of inconsistent
// length abort with a *DimensionMismatchError.
func (b *Builder) Build(ctx context.Context, store blobstore.BlobStore, prefix string) (*Matrix, Report, error) {
	report := Report{Source: prefix}

	names, err := b.Candidates(ctx, store, prefix)
	if err != nil {
		return nil, report, err
	}
	report.Listed = names

	if len(names) == 0 {
		return nil, report, &EmptyInputError{Source: prefix}
	}

	var (
		data []float64
		dim  int
	)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		start := time.Now()
		vec, err := b.embedFile(ctx, store, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, report, ctxErr
			}
			b.logger.Warn("skipping image", "file", name, "error", err)
			report.Skipped = append(report.Skipped, Skipped{Name: name, Err: err})
			if b.opts.OnSkipped != nil {
				b.opts.OnSkipped(name, err)
			}
			continue
		}

		if dim == 0 {
			dim = len(vec)
			data = make([]float64, 0, len(names)*dim)
		} else if len(vec) != dim {
			return nil, report, fmt.Errorf("embed %q: %w", name, &DimensionMismatchError{Expected: dim, Actual: len(vec)})
		}

		data = append(data, vec...)
		report.Processed = append(report.Processed, name)
		if b.opts.OnProcessed != nil {
			b.opts.OnProcessed(name, time.Since(start))
		}
	}

	if len(report.Processed) == 0 {
		return nil, report, &EmptyInputError{Source: prefix, Candidates: len(names)}
	}

	rows := len(report.Processed)
	b.logger.Debug("feature matrix built", "source", prefix, "rows", rows, "dim", dim, "skipped", len(report.Skipped))

	return fromData(rows, dim, data), report, nil
}

func (b *Builder) embedFile(ctx context.Context, store blobstore.BlobStore, name string) ([]float64, error) {
	rc := b.opts.Resource

	if err := rc.AcquireRead(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseRead()

	img, err := b.decode(ctx, store, name)
	if err != nil {
		return nil, err
	}

	in := Preprocess(img, b.embedder.InputSize(), b.opts.Interpolator)

	vec, err := b.embedder.Embed(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vec) == 0 {
		return nil, errors.New("embed: empty feature vector")
	}
	return vec, nil
}

func (b *Builder) decode(ctx context.Context, store blobstore.BlobStore, name string) (image.Image, error) {
	rc := b.opts.Resource

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = blob.Close() }()

	size := blob.Size()
	if err := rc.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer rc.ReleaseMemory(size)

	if err := rc.AcquireIO(ctx, int(size)); err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

package face

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/kernel"
)

// ErrNoValidPairs is returned when no pair has a face in both images.
var ErrNoValidPairs = errors.New("face: no valid face pairs for comparison")

// Encoder detects the first face in an image and returns its descriptor.
// found is false when the image contains no face.
type Encoder interface {
	Encode(ctx context.Context, img *image.RGBA) (descriptor []float64, found bool, err error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(ctx context.Context, img *image.RGBA) ([]float64, bool, error)

// Encode implements Encoder.
func (f EncoderFunc) Encode(ctx context.Context, img *image.RGBA) ([]float64, bool, error) {
	return f(ctx, img)
}

// Pair is a reference image and the image compared against it, typically a
// generated face and its source.
type Pair struct {
	First  image.Image
	Second image.Image
}

// Zip pairs first[i] with second[i]. Extra images in the longer slice are ignored.
func Zip(first, second []image.Image) []Pair {
	n := min(len(first), len(second))
	pairs := make([]Pair, n)
	for i := range n {
		pairs[i] = Pair{First: first[i], Second: second[i]}
	}
	return pairs
}

// Result is the outcome of Verify.
type Result struct {
	// Mean is the mean distance over matched pairs.
	Mean float64
	// Distances holds one entry per matched pair, in input order.
	Distances []float64
	Matched   int
	Skipped   int
}

// Options configures Verify.
type Options struct {
	// Logger receives a debug record per skipped pair. Nil discards them.
	Logger *slog.Logger
}

// Verify encodes both images of every pair and averages the Euclidean
// distance between descriptors. Grayscale inputs are expanded to RGB before
// encoding.
func Verify(ctx context.Context, enc Encoder, pairs []Pair, optFns ...func(o *Options)) (Result, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var res Result
	var sum float64

	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		a, okA, err := encode(ctx, enc, p.First)
		if err != nil {
			return Result{}, fmt.Errorf("face: pair %d: first image: %w", i, err)
		}
		b, okB, err := encode(ctx, enc, p.Second)
		if err != nil {
			return Result{}, fmt.Errorf("face: pair %d: second image: %w", i, err)
		}

		if !okA || !okB {
			logger.Debug("face pair skipped", "pair", i, "first_found", okA, "second_found", okB)
			res.Skipped++
			continue
		}
		if len(a) != len(b) {
			return Result{}, fmt.Errorf("face: pair %d: %w", i, &feature.DimensionMismatchError{Expected: len(a), Actual: len(b)})
		}

		d := kernel.L2(a, b)
		res.Distances = append(res.Distances, d)
		sum += d
	}

	res.Matched = len(res.Distances)
	if res.Matched == 0 {
		return res, ErrNoValidPairs
	}
	res.Mean = sum / float64(res.Matched)

	return res, nil
}

func encode(ctx context.Context, enc Encoder, img image.Image) ([]float64, bool, error) {
	if img == nil {
		return nil, false, nil
	}
	return enc.Encode(ctx, feature.ToRGB(img))
}

package distributional

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/internal/linalg"
	"github.com/hupe1980/imgeval/kernel"
	"gonum.org/v1/gonum/mat"
)

// KIDOptions configures KID.
type KIDOptions struct {
	// NumSubsets is the number of random subset pairs. Default: 100.
	NumSubsets int
	// MaxSubsetSize caps the subset size m. Default: 1000.
	MaxSubsetSize int
	// Seed seeds the subset draws. Default: 0.
	Seed int64
}

// DefaultKIDOptions returns the default options.
func DefaultKIDOptions() KIDOptions {
	return KIDOptions{
		NumSubsets:    100,
		MaxSubsetSize: 1000,
	}
}

// KIDResult is the outcome of KID.
type KIDResult struct {
	// Value is the mean of Estimates.
	Value float64
	// SubsetSize is m = min(|real|, |gen|, MaxSubsetSize).
	SubsetSize int
	NumSubsets int
	Seed       int64
	// Estimates holds the contribution of each subset, scaled so that their
	// mean is Value.
	Estimates []float64
}

// KID computes the Kernel Inception Distance between the rows of real and gen.
//
// For each subset, m real rows and then m generated rows are drawn without
// replacement. With x the generated and y the real subset, the unbiased MMD
// estimate is (Σa − tr(a))/(m−1) − 2·Σb/m with a = Kxx + Kyy and b = Kxy.
// The result is the sum of estimates divided by NumSubsets·m.
func KID(real, gen *feature.Matrix, optFns ...func(o *KIDOptions)) (KIDResult, error) {
	opts := DefaultKIDOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.NumSubsets < 1 {
		return KIDResult{}, fmt.Errorf("%w: NumSubsets must be positive, got %d", ErrInvalidOption, opts.NumSubsets)
	}
	if opts.MaxSubsetSize < 1 {
		return KIDResult{}, fmt.Errorf("%w: MaxSubsetSize must be positive, got %d", ErrInvalidOption, opts.MaxSubsetSize)
	}

	if err := checkPair(real, gen); err != nil {
		return KIDResult{}, err
	}

	nr, ng := real.Rows(), gen.Rows()
	m := min(nr, ng, opts.MaxSubsetSize)
	if m < 2 {
		return KIDResult{}, &InsufficientSamplesError{
			Real:          nr,
			Generated:     ng,
			MaxSubsetSize: opts.MaxSubsetSize,
			Required:      2,
		}
	}

	k := kernel.KIDPolynomial(real.Dim())
	rng := rand.New(rand.NewSource(opts.Seed))

	res := KIDResult{
		SubsetSize: m,
		NumSubsets: opts.NumSubsets,
		Seed:       opts.Seed,
		Estimates:  make([]float64, opts.NumSubsets),
	}

	var total float64
	for s := range opts.NumSubsets {
		y := real.Select(rng.Perm(nr)[:m])
		x := gen.Select(rng.Perm(ng)[:m])

		est := mmdEstimate(k, x, y, m)
		total += est
		res.Estimates[s] = est / float64(m)
	}

	res.Value = total / float64(opts.NumSubsets*m)
	return res, nil
}

func mmdEstimate(k kernel.Kernel, x, y *mat.Dense, m int) float64 {
	kxx := k.Gram(x, x)
	kyy := k.Gram(y, y)
	kxy := k.Gram(x, y)

	sumA := mat.Sum(kxx) + mat.Sum(kyy)
	trA := linalg.Trace(kxx) + linalg.Trace(kyy)

	return (sumA-trA)/float64(m-1) - 2*mat.Sum(kxy)/float64(m)
}

package distributional

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/internal/linalg"
	"github.com/hupe1980/imgeval/kernel"
)

// DefaultImagTolerance is the largest imaginary residue accepted silently.
const DefaultImagTolerance = 1e-3

// FIDOptions configures FID.
type FIDOptions struct {
	// Covariance selects the estimator. Default: PopulationCovariance.
	Covariance CovarianceEstimator

	// ImagTolerance bounds the imaginary residue of the matrix square root.
	ImagTolerance float64

	// Strict turns a residue above tolerance into a ComplexResidueError.
	// Otherwise it is logged as a warning and the real part is used.
	Strict bool

	// Logger receives the residue warning. Nil discards it.
	Logger *slog.Logger
}

// DefaultFIDOptions returns the default options.
func DefaultFIDOptions() FIDOptions {
	return FIDOptions{
		Covariance:    PopulationCovariance,
		ImagTolerance: DefaultImagTolerance,
	}
}

// FIDResult is the outcome of FID.
type FIDResult struct {
	// Distance is MeanTerm + TraceTerm.
	Distance float64
	// MeanTerm is ||μr − μg||².
	MeanTerm float64
	// TraceTerm is tr(Σr) + tr(Σg) − 2·tr(sqrtm(Σr·Σg)).
	TraceTerm float64
	// ImagResidue is the largest imaginary magnitude dropped from the square root.
	ImagResidue float64
}

// FID computes the Fréchet Inception Distance between the rows of real and gen.
func FID(real, gen *feature.Matrix, optFns ...func(o *FIDOptions)) (FIDResult, error) {
	opts := DefaultFIDOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := checkPair(real, gen); err != nil {
		return FIDResult{}, err
	}

	gr, err := FitGaussian(real, opts.Covariance)
	if err != nil {
		return FIDResult{}, fitError(err, real, gen)
	}
	gg, err := FitGaussian(gen, opts.Covariance)
	if err != nil {
		return FIDResult{}, fitError(err, real, gen)
	}

	return frechet(gr, gg, opts)
}

// FrechetDistance computes FID from precomputed Gaussian summaries.
func FrechetDistance(real, gen Gaussian, optFns ...func(o *FIDOptions)) (FIDResult, error) {
	opts := DefaultFIDOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if real.Dim() != gen.Dim() {
		return FIDResult{}, &feature.DimensionMismatchError{Expected: real.Dim(), Actual: gen.Dim()}
	}
	if real.Dim() == 0 || real.Cov == nil || gen.Cov == nil {
		return FIDResult{}, &feature.EmptyInputError{Source: "gaussian"}
	}

	return frechet(real, gen, opts)
}

func frechet(real, gen Gaussian, opts FIDOptions) (FIDResult, error) {
	if opts.ImagTolerance < 0 {
		return FIDResult{}, fmt.Errorf("%w: negative imaginary tolerance %g", ErrInvalidOption, opts.ImagTolerance)
	}

	sq, err := linalg.TraceSqrtProduct(real.Cov, gen.Cov)
	if err != nil {
		return FIDResult{}, fmt.Errorf("distributional: %w", err)
	}

	if sq.ImagResidue > opts.ImagTolerance {
		if opts.Strict {
			return FIDResult{}, &ComplexResidueError{Residue: sq.ImagResidue, Tolerance: opts.ImagTolerance}
		}
		if opts.Logger != nil {
			opts.Logger.Warn("imaginary component in matrix square root",
				"residue", sq.ImagResidue, "tolerance", opts.ImagTolerance)
		}
	}

	res := FIDResult{
		MeanTerm:    kernel.SquaredL2(real.Mean, gen.Mean),
		TraceTerm:   linalg.Trace(real.Cov) + linalg.Trace(gen.Cov) - 2*sq.Real,
		ImagResidue: sq.ImagResidue,
	}
	res.Distance = res.MeanTerm + res.TraceTerm

	return res, nil
}

func checkPair(real, gen *feature.Matrix) error {
	if real.Empty() {
		return &feature.EmptyInputError{Source: "real"}
	}
	if gen.Empty() {
		return &feature.EmptyInputError{Source: "generated"}
	}
	if real.Dim() != gen.Dim() {
		return &feature.DimensionMismatchError{Expected: real.Dim(), Actual: gen.Dim()}
	}
	return nil
}

func fitError(err error, real, gen *feature.Matrix) error {
	var ise *InsufficientSamplesError
	if errors.As(err, &ise) {
		ise.Real, ise.Generated = real.Rows(), gen.Rows()
		return ise
	}
	return err
}

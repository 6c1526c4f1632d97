package distributional

import (
	"errors"
	"fmt"

	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/internal/linalg"
	"gonum.org/v1/gonum/mat"
)

// CovarianceEstimator selects how the covariance is normalized.
type CovarianceEstimator int

const (
	// PopulationCovariance divides by N.
	PopulationCovariance CovarianceEstimator = iota
	// SampleCovariance divides by N−1.
	SampleCovariance
)

func (c CovarianceEstimator) String() string {
	return c.linalg().String()
}

func (c CovarianceEstimator) linalg() linalg.Estimator {
	if c == SampleCovariance {
		return linalg.Sample
	}
	return linalg.Population
}

// Gaussian summarizes a feature matrix by its mean and covariance.
type Gaussian struct {
	Mean []float64
	Cov  *mat.SymDense
	N    int
}

// Dim returns the feature dimension.
func (g Gaussian) Dim() int {
	return len(g.Mean)
}

// FitGaussian computes the mean and covariance of the rows of m.
func FitGaussian(m *feature.Matrix, est CovarianceEstimator) (Gaussian, error) {
	if m.Empty() {
		return Gaussian{}, &feature.EmptyInputError{}
	}

	cov, mean, err := linalg.Covariance(m.Dense(), est.linalg())
	if err != nil {
		if errors.Is(err, linalg.ErrTooFewRows) {
			return Gaussian{}, &InsufficientSamplesError{Real: m.Rows(), Generated: m.Rows(), Required: 2}
		}
		return Gaussian{}, fmt.Errorf("distributional: %w", err)
	}

	return Gaussian{Mean: mean, Cov: cov, N: m.Rows()}, nil
}

package linalg

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewRows is returned when an estimator needs more observations.
	ErrTooFewRows = errors.New("linalg: too few rows")

	// ErrEigenFailed is returned when the eigen decomposition does not converge.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed")

	// ErrNotSquare is returned for non-square operands.
	ErrNotSquare = errors.New("linalg: matrix is not square")
)

// Estimator selects the covariance normalization.
type Estimator int

const (
	// Population divides by N.
	Population Estimator = iota
	// Sample divides by N-1 (unbiased).
	Sample
)

func (e Estimator) String() string {
	switch e {
	case Population:
		return "population"
	case Sample:
		return "sample"
	default:
		return fmt.Sprintf("Estimator(%d)", e)
	}
}

// ColumnMeans returns the mean of each column of x.
func ColumnMeans(x mat.Matrix) []float64 {
	r, c := x.Dims()
	means := make([]float64, c)
	if r == 0 {
		return means
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		means[j] = stat.Mean(col, nil)
	}
	return means
}

// Covariance estimates the covariance of the columns of x, treating rows as
// observations. It returns the covariance and the column means.
func Covariance(x mat.Matrix, est Estimator) (*mat.SymDense, []float64, error) {
	r, c := x.Dims()
	switch {
	case r == 0:
		return nil, nil, fmt.Errorf("%w: covariance of empty matrix", ErrTooFewRows)
	case c == 0:
		return nil, nil, errors.New("linalg: covariance of zero-width matrix")
	case est == Sample && r < 2:
		return nil, nil, fmt.Errorf("%w: sample covariance needs 2 rows, have %d", ErrTooFewRows, r)
	}

	means := ColumnMeans(x)

	if r == 1 {
		// Population covariance of a single observation is zero.
		return mat.NewSymDense(c, nil), means, nil
	}

	cov := mat.NewSymDense(c, nil)
	stat.CovarianceMatrix(cov, x, nil)

	if est == Population {
		cov.ScaleSym(float64(r-1)/float64(r), cov)
	}

	return cov, means, nil
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(a mat.Matrix) float64 {
	r, _ := a.Dims()
	var t float64
	for i := 0; i < r; i++ {
		t += a.At(i, i)
	}
	return t
}

// SqrtTrace is the trace of a principal matrix square root.
type SqrtTrace struct {
	// Real is the trace of the real part of the square root.
	Real float64
	// ImagResidue is the largest imaginary magnitude among the square roots of
	// the eigenvalues. For products of PSD matrices it is roundoff.
	ImagResidue float64
}

// TraceSqrtProduct computes tr(sqrtm(a·b)) through the eigenvalues of a·b:
// the trace of the principal square root equals the sum of the principal
// square roots of the eigenvalues. The product need not be symmetric, so the
// eigenvalues are taken as complex and only the real part of the sum is kept.
func TraceSqrtProduct(a, b mat.Matrix) (SqrtTrace, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != ac || br != bc {
		return SqrtTrace{}, fmt.Errorf("%w: %dx%d and %dx%d", ErrNotSquare, ar, ac, br, bc)
	}
	if ac != br {
		return SqrtTrace{}, fmt.Errorf("linalg: cannot multiply %dx%d by %dx%d", ar, ac, br, bc)
	}
	if ar == 0 {
		return SqrtTrace{}, nil
	}

	var p mat.Dense
	p.Mul(a, b)

	var eig mat.Eigen
	if ok := eig.Factorize(&p, mat.EigenNone); !ok {
		return SqrtTrace{}, ErrEigenFailed
	}

	var out SqrtTrace
	for _, v := range eig.Values(nil) {
		s := cmplx.Sqrt(v)
		out.Real += real(s)
		out.ImagResidue = math.Max(out.ImagResidue, math.Abs(imag(s)))
	}

	return out, nil
}

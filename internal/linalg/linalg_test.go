package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestColumnMeans(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, 10, 2, 20, 3, 30})
	assert.InDeltaSlice(t, []float64{2, 20}, ColumnMeans(x), 1e-12)
}

func TestCovariance(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})

	t.Run("Sample", func(t *testing.T) {
		cov, means, err := Covariance(x, Sample)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{2.5, 5}, means, 1e-12)
		// var(1..4) with N-1 = 5/3
		assert.InDelta(t, 5.0/3.0, cov.At(0, 0), 1e-12)
		assert.InDelta(t, 10.0/3.0, cov.At(0, 1), 1e-12)
		assert.InDelta(t, 20.0/3.0, cov.At(1, 1), 1e-12)
	})

	t.Run("Population", func(t *testing.T) {
		cov, _, err := Covariance(x, Population)
		require.NoError(t, err)
		assert.InDelta(t, 1.25, cov.At(0, 0), 1e-12)
		assert.InDelta(t, 2.5, cov.At(1, 0), 1e-12)
		assert.InDelta(t, 5.0, cov.At(1, 1), 1e-12)
	})

	t.Run("SingleRow", func(t *testing.T) {
		one := mat.NewDense(1, 2, []float64{3, 4})
		cov, means, err := Covariance(one, Population)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 4}, means)
		assert.Zero(t, cov.At(0, 0))

		_, _, err = Covariance(one, Sample)
		require.ErrorIs(t, err, ErrTooFewRows)
	})
}

func TestTraceSqrtProduct(t *testing.T) {
	t.Run("DiagonalProduct", func(t *testing.T) {
		a := mat.NewSymDense(2, []float64{4, 0, 0, 9})
		b := mat.NewSymDense(2, []float64{1, 0, 0, 4})
		// sqrt(diag(4, 36)) -> 2 + 6
		st, err := TraceSqrtProduct(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 8.0, st.Real, 1e-9)
		assert.InDelta(t, 0.0, st.ImagResidue, 1e-9)
	})

	t.Run("SquareOfPSD", func(t *testing.T) {
		a := mat.NewSymDense(3, []float64{
			2, 1, 0,
			1, 3, 1,
			0, 1, 4,
		})
		st, err := TraceSqrtProduct(a, a)
		require.NoError(t, err)
		assert.InDelta(t, Trace(a), st.Real, 1e-9)
	})

	t.Run("NegativeEigenvalueIsImaginary", func(t *testing.T) {
		a := mat.NewDense(1, 1, []float64{-4})
		b := mat.NewDense(1, 1, []float64{1})
		st, err := TraceSqrtProduct(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, st.Real, 1e-12)
		assert.InDelta(t, 2.0, st.ImagResidue, 1e-12)
	})

	t.Run("NotSquare", func(t *testing.T) {
		_, err := TraceSqrtProduct(mat.NewDense(2, 3, nil), mat.NewDense(3, 3, nil))
		require.ErrorIs(t, err, ErrNotSquare)
	})

	t.Run("Empty", func(t *testing.T) {
		st, err := TraceSqrtProduct(&mat.Dense{}, &mat.Dense{})
		require.NoError(t, err)
		assert.Zero(t, st.Real)
	})
}

func TestEstimatorString(t *testing.T) {
	assert.Equal(t, "population", Population.String())
	assert.Equal(t, "sample", Sample.String())
}

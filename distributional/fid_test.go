package distributional

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFID_Identical(t *testing.T) {
	rng := testutil.NewRNG(1)
	x := feature.MustMatrix(rng.GaussianRows(200, 8, 0, 1))

	res, err := FID(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Distance, 1e-6)
	assert.InDelta(t, 0, res.MeanTerm, 1e-12)
	assert.LessOrEqual(t, res.ImagResidue, DefaultImagTolerance)
}

func TestFID_RowOrderInvariant(t *testing.T) {
	rng := testutil.NewRNG(2)
	realRows := rng.GaussianRows(150, 6, 0, 1)
	genRows := rng.GaussianRows(120, 6, 0.5, 1.5)

	a, err := FID(feature.MustMatrix(realRows), feature.MustMatrix(genRows))
	require.NoError(t, err)
	b, err := FID(feature.MustMatrix(rng.Shuffled(realRows)), feature.MustMatrix(rng.Shuffled(genRows)))
	require.NoError(t, err)

	assert.InDelta(t, a.Distance, b.Distance, 1e-8)
	assert.Greater(t, a.Distance, 0.0)
}

func TestFID_KnownGaussians(t *testing.T) {
	// One-dimensional: d² = (μr − μg)² + (σr − σg)².
	realRows := [][]float64{{-1}, {1}}         // μ=0, σ²=1 (population)
	genRows := [][]float64{{1}, {3}, {1}, {3}} // μ=2, σ²=1

	res, err := FID(feature.MustMatrix(realRows), feature.MustMatrix(genRows))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.MeanTerm, 1e-12)
	assert.InDelta(t, 0.0, res.TraceTerm, 1e-12)

	genRows = [][]float64{{-2}, {2}} // μ=0, σ²=4
	res, err = FID(feature.MustMatrix(realRows), feature.MustMatrix(genRows))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Distance, 1e-12)
}

func TestFID_SampleCovariance(t *testing.T) {
	realRows := [][]float64{{-1}, {1}}
	genRows := [][]float64{{-2}, {2}}

	// Sample variances are 2 and 8: (√2 − √8)² = 2.
	res, err := FID(feature.MustMatrix(realRows), feature.MustMatrix(genRows), func(o *FIDOptions) {
		o.Covariance = SampleCovariance
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Distance, 1e-12)

	_, err = FID(feature.MustMatrix([][]float64{{1}}), feature.MustMatrix(genRows), func(o *FIDOptions) {
		o.Covariance = SampleCovariance
	})
	var ise *InsufficientSamplesError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 1, ise.Real)
	assert.Equal(t, 2, ise.Generated)
}

func TestFID_Errors(t *testing.T) {
	x := feature.MustMatrix([][]float64{{1, 2}, {3, 4}})
	empty := feature.MustMatrix(nil)

	_, err := FID(empty, x)
	var e *feature.EmptyInputError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "real", e.Source)

	_, err = FID(x, empty)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "generated", e.Source)

	_, err = FID(x, feature.MustMatrix([][]float64{{1, 2, 3}, {4, 5, 6}}))
	var dm *feature.DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)

	_, err = FID(x, x, func(o *FIDOptions) { o.ImagTolerance = -1 })
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestFID_ComplexResidue(t *testing.T) {
	// Rank-deficient covariances (N < D) produce roundoff eigenvalues that
	// may be slightly negative; a zero tolerance makes any residue visible.
	rng := testutil.NewRNG(5)
	realM := feature.MustMatrix(rng.GaussianRows(5, 16, 0, 1))
	genM := feature.MustMatrix(rng.GaussianRows(5, 16, 1, 2))

	lenient, err := FID(realM, genM)
	require.NoError(t, err)

	if lenient.ImagResidue == 0 {
		t.Skip("no imaginary residue produced on this platform")
	}

	var buf bytes.Buffer
	_, err = FID(realM, genM, func(o *FIDOptions) {
		o.ImagTolerance = 0
		o.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "imaginary component")

	_, err = FID(realM, genM, func(o *FIDOptions) {
		o.ImagTolerance = 0
		o.Strict = true
	})
	var cre *ComplexResidueError
	require.ErrorAs(t, err, &cre)
	assert.Equal(t, lenient.ImagResidue, cre.Residue)
	assert.ErrorIs(t, err, ErrComplexResidue)
}

func TestFrechetDistance(t *testing.T) {
	rng := testutil.NewRNG(3)
	realM := feature.MustMatrix(rng.GaussianRows(100, 4, 0, 1))
	genM := feature.MustMatrix(rng.GaussianRows(100, 4, 1, 1))

	gr, err := FitGaussian(realM, PopulationCovariance)
	require.NoError(t, err)
	gg, err := FitGaussian(genM, PopulationCovariance)
	require.NoError(t, err)
	assert.Equal(t, 4, gr.Dim())
	assert.Equal(t, 100, gr.N)

	fromGaussians, err := FrechetDistance(gr, gg)
	require.NoError(t, err)
	direct, err := FID(realM, genM)
	require.NoError(t, err)
	assert.InDelta(t, direct.Distance, fromGaussians.Distance, 1e-12)

	_, err = FrechetDistance(gr, Gaussian{Mean: []float64{1}})
	assert.ErrorIs(t, err, feature.ErrDimensionMismatch)
}

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-9)
		})
	}

	assert.InDelta(t, 5.0, L2([]float64{0, 0}, []float64{3, 4}), 1e-12)
}

func TestPolynomial(t *testing.T) {
	k := KIDPolynomial(2)
	assert.Equal(t, TypePolynomial, k.Type())
	assert.Equal(t, "Polynomial", k.Type().String())

	// (uᵀv/2 + 1)^3 with uᵀv = 2 -> 8
	assert.InDelta(t, 8.0, k.Eval([]float64{1, 1}, []float64{1, 1}), 1e-12)

	quartic := Polynomial{Degree: 4, Gamma: 1, Coef0: 0}
	assert.InDelta(t, 16.0, quartic.Eval([]float64{2}, []float64{1}), 1e-12)
}

func TestGram(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	y := mat.NewDense(3, 2, []float64{1, 1, 2, 0, 0, 0})

	t.Run("Linear", func(t *testing.T) {
		g := Linear{}.Gram(x, y)
		r, c := g.Dims()
		require.Equal(t, 2, r)
		require.Equal(t, 3, c)
		assert.Equal(t, 2.0, g.At(0, 1))
		assert.Equal(t, 1.0, g.At(1, 0))
	})

	t.Run("PolynomialMatchesEval", func(t *testing.T) {
		k := KIDPolynomial(2)
		g := k.Gram(x, y)
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, k.Eval(x.RawRowView(i), y.RawRowView(j)), g.At(i, j), 1e-12)
			}
		}
	})
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Linear", TypeLinear.String())
	assert.Equal(t, "Unknown(9)", Type(9).String())
}

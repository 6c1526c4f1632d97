package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dot calculates the dot product of two vectors.
// Panics if the lengths differ.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// SquaredL2 calculates the squared Euclidean distance between two vectors.
// Panics if the lengths differ.
func SquaredL2(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// L2 calculates the Euclidean distance between two vectors.
func L2(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Type enumerates the supported kernels.
type Type int

const (
	TypeLinear Type = iota
	TypePolynomial
)

func (t Type) String() string {
	switch t {
	case TypeLinear:
		return "Linear"
	case TypePolynomial:
		return "Polynomial"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Kernel evaluates k(u, v) on single vectors and on whole row sets.
type Kernel interface {
	Type() Type
	// Eval returns k(u, v).
	Eval(u, v []float64) float64
	// Gram returns the matrix G with G[i,j] = k(x_i, y_j) over the rows of x and y.
	Gram(x, y mat.Matrix) *mat.Dense
}

// Linear is the plain inner product k(u, v) = uᵀv.
type Linear struct{}

// Type implements Kernel.
func (Linear) Type() Type { return TypeLinear }

// Eval implements Kernel.
func (Linear) Eval(u, v []float64) float64 { return Dot(u, v) }

// Gram implements Kernel.
func (Linear) Gram(x, y mat.Matrix) *mat.Dense {
	var g mat.Dense
	g.Mul(x, y.T())
	return &g
}

// Polynomial is k(u, v) = (Gamma·uᵀv + Coef0)^Degree.
type Polynomial struct {
	Degree int
	Gamma  float64
	Coef0  float64
}

// KIDPolynomial returns the cubic kernel (uᵀv/dim + 1)³ used by Kernel
// Inception Distance.
func KIDPolynomial(dim int) Polynomial {
	return Polynomial{Degree: 3, Gamma: 1 / float64(dim), Coef0: 1}
}

// Type implements Kernel.
func (Polynomial) Type() Type { return TypePolynomial }

// Eval implements Kernel.
func (p Polynomial) Eval(u, v []float64) float64 {
	return p.apply(Dot(u, v))
}

// Gram implements Kernel.
func (p Polynomial) Gram(x, y mat.Matrix) *mat.Dense {
	var g mat.Dense
	g.Mul(x, y.T())
	g.Apply(func(_, _ int, v float64) float64 {
		return p.apply(v)
	}, &g)
	return &g
}

func (p Polynomial) apply(dot float64) float64 {
	base := p.Gamma*dot + p.Coef0
	switch p.Degree {
	case 1:
		return base
	case 2:
		return base * base
	case 3:
		return base * base * base
	default:
		return math.Pow(base, float64(p.Degree))
	}
}

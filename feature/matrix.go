package feature

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is an N×D feature matrix, one embedding per row.
// Row order carries no meaning. A Matrix with zero rows is valid and empty.
type Matrix struct {
	dense *mat.Dense // nil when empty
	dim   int
}

// NewMatrix copies rows into a new Matrix. All rows must have the same length.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, &DimensionMismatchError{Expected: 1, Actual: 0}
	}

	data := make([]float64, 0, len(rows)*dim)
	for _, r := range rows {
		if len(r) != dim {
			return nil, &DimensionMismatchError{Expected: dim, Actual: len(r)}
		}
		data = append(data, r...)
	}

	return &Matrix{dense: mat.NewDense(len(rows), dim, data), dim: dim}, nil
}

func fromData(rows, dim int, data []float64) *Matrix {
	return &Matrix{dense: mat.NewDense(rows, dim, data), dim: dim}
}

// MustMatrix is like NewMatrix but panics on error.
func MustMatrix(rows [][]float64) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDense wraps d without copying. A nil d yields an empty Matrix.
func FromDense(d *mat.Dense) *Matrix {
	if d == nil || d.IsEmpty() {
		return &Matrix{}
	}
	_, c := d.Dims()
	return &Matrix{dense: d, dim: c}
}

// Rows returns N.
func (m *Matrix) Rows() int {
	if m == nil || m.dense == nil {
		return 0
	}
	r, _ := m.dense.Dims()
	return r
}

// Dim returns D, or 0 for an empty matrix.
func (m *Matrix) Dim() int {
	if m == nil {
		return 0
	}
	return m.dim
}

// Empty reports whether the matrix has no rows.
func (m *Matrix) Empty() bool {
	return m.Rows() == 0
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}

// Dense returns the backing matrix, or nil when empty.
// Callers must treat it as read-only.
func (m *Matrix) Dense() *mat.Dense {
	if m == nil {
		return nil
	}
	return m.dense
}

// Select returns a new dense matrix holding the given rows in order.
func (m *Matrix) Select(idx []int) *mat.Dense {
	out := mat.NewDense(len(idx), m.dim, nil)
	for i, j := range idx {
		out.SetRow(i, m.dense.RawRowView(j))
	}
	return out
}

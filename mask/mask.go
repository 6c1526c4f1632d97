package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when two grids do not cover the same spatial extent.
	ErrShapeMismatch = errors.New("mask: shape mismatch")

	// ErrLabelOutOfRange is returned when a label does not index a class of the
	// matching probability grid.
	ErrLabelOutOfRange = errors.New("mask: label out of range")

	// ErrInvalidGrid is returned when a grid's data length does not match its shape.
	ErrInvalidGrid = errors.New("mask: invalid grid")
)

// LabelGrid is a Height×Width grid of class labels stored row-major.
type LabelGrid struct {
	Height int
	Width  int
	Labels []int
}

// NewLabelGrid builds a LabelGrid from nested rows.
// All rows must have the same length.
func NewLabelGrid(rows [][]int) (LabelGrid, error) {
	g := LabelGrid{Height: len(rows)}
	if len(rows) == 0 {
		return g, nil
	}

	g.Width = len(rows[0])
	g.Labels = make([]int, 0, g.Height*g.Width)

	for i, r := range rows {
		if len(r) != g.Width {
			return LabelGrid{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, i, len(r), g.Width)
		}
		g.Labels = append(g.Labels, r...)
	}

	return g, nil
}

// MustLabelGrid is like NewLabelGrid but panics on error.
func MustLabelGrid(rows [][]int) LabelGrid {
	g, err := NewLabelGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of pixels.
func (g LabelGrid) Len() int {
	return g.Height * g.Width
}

// At returns the label at row y, column x.
func (g LabelGrid) At(y, x int) int {
	return g.Labels[y*g.Width+x]
}

// Validate checks that the label slice matches the declared shape.
func (g LabelGrid) Validate() error {
	if g.Height < 0 || g.Width < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidGrid, g.Height, g.Width)
	}
	if len(g.Labels) != g.Len() {
		return fmt.Errorf("%w: %d labels for shape %dx%d", ErrInvalidGrid, len(g.Labels), g.Height, g.Width)
	}
	return nil
}

// SameShape reports whether g and other cover the same spatial extent.
func (g LabelGrid) SameShape(other LabelGrid) bool {
	return g.Height == other.Height && g.Width == other.Width
}

// ProbabilityGrid is a Classes×Height×Width grid of per-class scores stored
// class-major: Values[c*Height*Width + y*Width + x].
type ProbabilityGrid struct {
	Classes int
	Height  int
	Width   int
	Values  []float64
}

// NewProbabilityGrid allocates a zeroed grid.
func NewProbabilityGrid(classes, height, width int) ProbabilityGrid {
	return ProbabilityGrid{
		Classes: classes,
		Height:  height,
		Width:   width,
		Values:  make([]float64, classes*height*width),
	}
}

// Pixels returns Height*Width.
func (g ProbabilityGrid) Pixels() int {
	return g.Height * g.Width
}

// Plane returns the scores of class c for all pixels, row-major.
// The returned slice aliases the grid.
func (g ProbabilityGrid) Plane(c int) []float64 {
	n := g.Pixels()
	return g.Values[c*n : (c+1)*n]
}

// Set stores the score of class c at row y, column x.
func (g ProbabilityGrid) Set(c, y, x int, v float64) {
	g.Values[c*g.Pixels()+y*g.Width+x] = v
}

// Validate checks that the value slice matches the declared shape.
func (g ProbabilityGrid) Validate() error {
	if g.Classes < 0 || g.Height < 0 || g.Width < 0 {
		return fmt.Errorf("%w: negative shape %dx%dx%d", ErrInvalidGrid, g.Classes, g.Height, g.Width)
	}
	if len(g.Values) != g.Classes*g.Pixels() {
		return fmt.Errorf("%w: %d values for shape %dx%dx%d", ErrInvalidGrid, len(g.Values), g.Classes, g.Height, g.Width)
	}
	return nil
}

// CheckPair validates a ground-truth grid against a probability grid: both
// must be well formed, cover the same extent, and every label must index one
// of the grid's classes.
func CheckPair(truth LabelGrid, scores ProbabilityGrid) error {
	if err := truth.Validate(); err != nil {
		return err
	}
	if err := scores.Validate(); err != nil {
		return err
	}
	if truth.Height != scores.Height || truth.Width != scores.Width {
		return fmt.Errorf("%w: labels %dx%d, scores %dx%d", ErrShapeMismatch, truth.Height, truth.Width, scores.Height, scores.Width)
	}
	for i, l := range truth.Labels {
		if l < 0 || l >= scores.Classes {
			return fmt.Errorf("%w: pixel %d has label %d, classes %d", ErrLabelOutOfRange, i, l, scores.Classes)
		}
	}
	return nil
}

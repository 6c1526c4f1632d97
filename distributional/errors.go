package distributional

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSamples is the sentinel wrapped by InsufficientSamplesError.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrComplexResidue is the sentinel wrapped by ComplexResidueError.
	ErrComplexResidue = errors.New("complex residue in matrix square root")

	// ErrInvalidOption is returned for out-of-range options.
	ErrInvalidOption = errors.New("invalid option")
)

// InsufficientSamplesError is returned when the sets are too small for the
// estimator: KID needs subsets of at least two rows, the sample covariance
// needs two rows per set.
type InsufficientSamplesError struct {
	Real          int
	Generated     int
	MaxSubsetSize int // zero when no subset limit applies
	Required      int
}

func (e *InsufficientSamplesError) Error() string {
	if e.MaxSubsetSize > 0 {
		return fmt.Sprintf("insufficient samples: subset size min(%d, %d, %d) < %d",
			e.Real, e.Generated, e.MaxSubsetSize, e.Required)
	}
	return fmt.Sprintf("insufficient samples: have %d real and %d generated rows, need %d",
		e.Real, e.Generated, e.Required)
}

func (e *InsufficientSamplesError) Unwrap() error { return ErrInsufficientSamples }

// ComplexResidueError reports that tr(sqrtm(Σr·Σg)) carried an imaginary
// component above tolerance. Returned only in strict mode.
type ComplexResidueError struct {
	Residue   float64
	Tolerance float64
}

func (e *ComplexResidueError) Error() string {
	return fmt.Sprintf("complex residue in matrix square root: %g exceeds tolerance %g", e.Residue, e.Tolerance)
}

func (e *ComplexResidueError) Unwrap() error { return ErrComplexResidue }

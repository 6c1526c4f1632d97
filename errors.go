package imgeval

import (
	"errors"

	"github.com/hupe1980/imgeval/distributional"
	"github.com/hupe1980/imgeval/face"
	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/mask"
)

var (
	// ErrEmptyInput is wrapped by every EmptyInputError.
	ErrEmptyInput = feature.ErrEmptyInput

	// ErrDimensionMismatch is wrapped by every DimensionMismatchError.
	ErrDimensionMismatch = feature.ErrDimensionMismatch

	// ErrInsufficientSamples is wrapped by every InsufficientSamplesError.
	ErrInsufficientSamples = distributional.ErrInsufficientSamples

	// ErrComplexResidue is wrapped by every ComplexResidueError.
	ErrComplexResidue = distributional.ErrComplexResidue

	// ErrInvalidOption is returned for out-of-range metric options.
	ErrInvalidOption = distributional.ErrInvalidOption

	// ErrNoValidPairs is returned when no face pair could be compared.
	ErrNoValidPairs = face.ErrNoValidPairs

	// ErrShapeMismatch is returned when grids of a sample differ in shape.
	ErrShapeMismatch = mask.ErrShapeMismatch

	// ErrLabelOutOfRange is returned when a true label does not index a class.
	ErrLabelOutOfRange = mask.ErrLabelOutOfRange

	// ErrNoEmbedder is returned by feature-based operations of an Evaluator
	// created without a feature.Embedder.
	ErrNoEmbedder = errors.New("imgeval: no embedder configured")

	// ErrNoFaceEncoder is returned by FaceVerification without WithFaceEncoder.
	ErrNoFaceEncoder = errors.New("imgeval: no face encoder configured")
)

type (
	// EmptyInputError reports an image set that yielded no feature rows.
	EmptyInputError = feature.EmptyInputError

	// DimensionMismatchError indicates feature vectors of inconsistent length.
	DimensionMismatchError = feature.DimensionMismatchError

	// InsufficientSamplesError is returned when a set is too small for KID
	// subsets or for the sample covariance.
	InsufficientSamplesError = distributional.InsufficientSamplesError

	// ComplexResidueError is returned by strict FID when the matrix square
	// root carries an imaginary component above tolerance.
	ComplexResidueError = distributional.ComplexResidueError
)

package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is the sentinel wrapped by EmptyInputError.
	ErrEmptyInput = errors.New("empty input")

	// ErrDimensionMismatch is the sentinel wrapped by DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrCorruptCache is returned when a cached matrix fails validation.
	ErrCorruptCache = errors.New("feature: corrupt cache entry")
)

// EmptyInputError reports a source that yielded no usable feature rows.
//
// Candidates is the number of files that matched the extension filter;
// zero means the source contained no image files at all.
type EmptyInputError struct {
	Source     string
	Candidates int
}

func (e *EmptyInputError) Error() string {
	if e.Candidates == 0 {
		return fmt.Sprintf("empty input: no image files in %q", e.Source)
	}
	return fmt.Sprintf("empty input: none of %d image files in %q could be processed", e.Candidates, e.Source)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// DimensionMismatchError indicates feature vectors of inconsistent length.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

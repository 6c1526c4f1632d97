// Package conv provides checked integer conversions for sizes read from or
// written to persisted headers.
package conv

// Package kernel provides vector similarity functions and positive-definite
// kernels over feature embeddings.
//
// Vector functions operate on []float64 rows. Gram matrices are built with
// gonum's BLAS-backed matrix multiply, which is what makes kernel MMD over
// thousands of 2048-dimensional embeddings practical.
package kernel

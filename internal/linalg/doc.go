// Package linalg holds the dense linear algebra behind the distributional
// metrics: column statistics, covariance estimation and the trace of the
// principal square root of a covariance product.
package linalg

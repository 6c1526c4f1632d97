// Package distributional measures how far a generated feature distribution
// is from a real one.
//
// FID fits a Gaussian to each feature matrix and returns the Fréchet distance
// between them:
//
//	d² = ||μr − μg||² + tr(Σr) + tr(Σg) − 2·tr(sqrtm(Σr·Σg))
//
// KID is the unbiased squared MMD under the cubic polynomial kernel
// k(u, v) = (uᵀv/D + 1)³, averaged over random subsets drawn from a seeded
// source. Both functions are pure: they never touch the input matrices.
package distributional

// Package testutil provides testing utilities for imgeval.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible feature rows, label and
// probability grids, and small encoded images.
//
// # Random Feature Rows
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.GaussianRows(256, 64, 0, 1)   // N(0, 1) rows
//	same := rng.Shuffled(rows)                // permuted copy
//
// # Segmentation Fixtures
//
//	truth := rng.LabelGrid(32, 32, 4)
//	scores := rng.ProbabilityGrid(4, 32, 32)
//
// # Images
//
//	img := rng.NoiseImage(16, 16)
//	data := testutil.EncodePNG(img)
package testutil

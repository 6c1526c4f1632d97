// Package overlap computes per-class Intersection-over-Union between predicted
// and ground-truth label grids and aggregates it to mean IoU.
//
// A class whose union is empty (absent from both grids) is undefined: it is
// excluded from the mean instead of scoring 0 or 1. Undefined values are
// explicit at the type level; NaN only appears through Result.Float64.
//
// Pixel sets are held in roaring bitmaps, so intersection and union counts are
// computed with container-level AND/OR cardinality instead of per-pixel loops.
package overlap

// Package mask defines the label and probability grids consumed by the
// supervised metrics (ranking and overlap).
//
// A LabelGrid holds one integer class label per pixel in row-major order.
// A ProbabilityGrid holds one score per class per pixel in class-major (CHW)
// order, the layout produced by segmentation networks.
package mask

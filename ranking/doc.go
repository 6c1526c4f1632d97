// Package ranking computes Average Precision for dense per-pixel class
// predictions.
//
// For every sample the ground truth is one-hot encoded, a precision-recall
// curve is built per class by ranking pixels on descending score, and the
// per-class curves are blended by averaging precision and recall at each rank
// position. The blended curve is integrated with the trapezoid rule, giving one
// AP per sample; the final score is the mean over samples.
//
// Blending happens before integration. This is not the macro average of
// per-class AP values and the two generally differ.
package ranking

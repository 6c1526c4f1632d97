// Package face computes the face verification value of image pairs: the mean
// Euclidean distance between the face descriptors of each pair.
//
// Face detection and encoding are injected through Encoder. Pairs in which
// either image has no detectable face are excluded from the mean.
package face

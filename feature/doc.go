// Package feature turns a set of images into an N×D feature matrix.
//
// A Builder lists the image files under a blobstore prefix, decodes each one,
// converts it to RGB, resizes it to the embedder's input size, normalizes it
// into a CHW tensor and hands it to an injected Embedder. Files that cannot be
// decoded or embedded are logged and skipped; a set in which no file survives
// is an EmptyInputError.
//
// # Usage
//
//	b := feature.NewBuilder(embedder, func(o *feature.BuilderOptions) {
//	    o.Recursive = true
//	    o.Logger = slog.Default()
//	})
//
//	m, report, err := b.Build(ctx, store, "real/")
//
// # Cache
//
// Extraction dominates the cost of FID and KID. Cache persists matrices in
// any blobstore.BlobStore using a compact, checksummed, compressed format so
// repeated evaluations against the same reference set skip the embedder.
package feature

// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("eval/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	real := imgeval.ImageSet{Store: store, Prefix: "real/", Recursive: true}
//
// # Features
//
//   - Ranged reads for partial fetches
//   - Managed (multipart) uploads for large cached feature matrices
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible services
package s3

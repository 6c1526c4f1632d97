// Package blobstore provides storage abstraction for image sets and cached
// feature matrices.
//
// A BlobStore addresses immutable blobs by slash-separated names, the same
// way object stores address keys. Directories are name prefixes.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap reads
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 with ranged reads and managed uploads
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// List must return every blob below prefix (recursively) in lexicographic
// order. Implementations must be safe for concurrent use.
package blobstore

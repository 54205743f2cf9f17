// Package blobstore abstracts where training and query vector files live.
//
// A BlobStore hands out read-only Blobs by name. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, read through mmap
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Datasets are read front to back; NewReader turns any Blob into a stream:
//
//	blob, err := store.Open(ctx, "train.csv.zst")
//	if err != nil {
//	    return err
//	}
//	defer blob.Close()
//
//	r, err := blobstore.NewReader(ctx, blob)
package blobstore

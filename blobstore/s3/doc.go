// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	vs, err := dataset.Load(ctx, store, "train.csv.zst")
//
// Reads are ranged GETs; writes go through the managed uploader so large
// dataset files are uploaded in parts.
package s3

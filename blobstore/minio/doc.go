// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works against MinIO and other S3-compatible services (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
//	store, err := minio.New("localhost:9000", "datasets",
//	    minio.WithStaticCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vs, err := dataset.Load(ctx, store, "train.csv.gz")
package minio

// Package vectree provides embeddable tree-based nearest-neighbour search
// over dense float64 vectors for Go.
//
// A DB stores vectors of one fixed dimension and indexes them with a binary
// space-partitioning tree. Two split strategies are available:
//
//   - model.KindKD splits each node on its widest coordinate at the median.
//   - model.KindRP splits each node along a random unit direction at a
//     jittered median projection.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, _ := vectree.New(model.KindKD, vectree.WithLeafSize(64))
//	defer db.Close()
//
//	_ = db.AddData(ctx, []vector.Vector{{1, 2}, {3, 4}, {5, 6}})
//	results, _ := db.Search(ctx, vector.Vector{3, 3}, 2)
//	for _, r := range results {
//	    fmt.Println(r.Index, r.Distance)
//	}
//
// Result indices are row positions. They shift when rows are removed.
//
// # Loading Datasets
//
// Datasets are CSV files with one vector per line. They can be ingested from
// any blobstore.BlobStore (local files, S3, MinIO); .zst, .gz and .lz4 blobs
// are decompressed transparently:
//
//	store := blobstore.NewLocalStore("./data")
//	n, _ := db.Ingest(ctx, store, "train.csv.zst")
//
// # Concurrency
//
// Every mutation rebuilds the tree and publishes it atomically. Searches
// never block on writers and always see one complete tree.
//
// # Observability
//
// Operations are logged through a slog-based Logger and reported to a
// MetricsCollector; see the observability package for Prometheus.
package vectree

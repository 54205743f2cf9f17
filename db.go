package vectree

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vectree/blobstore"
	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/index/kdtree"
	"github.com/hupe1980/vectree/index/rptree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/resource"
	"github.com/hupe1980/vectree/vector"
)

// DB is a nearest-neighbour index handle. It is safe for concurrent use:
// searches run lock-free against the current tree while writers rebuild and
// publish a new one.
type DB struct {
	id      string
	idx     *index.TreeIndex
	logger  *Logger
	metrics MetricsCollector
	cache   *queryCache
	rc      *resource.Controller

	closed atomic.Bool
}

// New creates an empty DB using the given split strategy.
func New(kind model.Kind, optFns ...Option) (*DB, error) {
	opts := applyOptions(optFns)

	var (
		idx *index.TreeIndex
		err error
	)

	switch kind {
	case model.KindKD:
		idx, err = kdtree.New(func(o *kdtree.Options) {
			o.LeafSize = opts.leafSize
			o.Policy = opts.policy
		})
	case model.KindRP:
		idx, err = rptree.New(func(o *rptree.Options) {
			o.LeafSize = opts.leafSize
			o.Policy = opts.policy
			o.Seed = opts.seed
		})
	default:
		return nil, fmt.Errorf("unsupported index kind %q", kind)
	}
	if err != nil {
		return nil, translateError(err)
	}

	cache, err := newQueryCache(opts.queryCacheSize)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()

	db := &DB{
		id:      id,
		idx:     idx,
		logger:  opts.logger.WithInstance(id).WithKind(kind.String()),
		metrics: opts.metricsCollector,
		cache:   cache,
		rc:      opts.controller,
	}

	db.logger.Debug("db created",
		"leaf_size", opts.leafSize,
		"policy", opts.policy.String(),
		"query_cache", opts.queryCacheSize,
	)

	return db, nil
}

// ID returns the instance id attached to every log record.
func (db *DB) ID() string { return db.id }

// Kind reports the split strategy.
func (db *DB) Kind() model.Kind { return db.idx.Kind() }

// Len returns the number of stored vectors.
func (db *DB) Len() int { return db.idx.Len() }

// Dim returns the vector dimension, or 0 before the first vector.
func (db *DB) Dim() int { return db.idx.Dim() }

// Generation increases with every rebuild.
func (db *DB) Generation() uint64 { return db.idx.Generation() }

// Stats describes the DB and its current tree.
func (db *DB) Stats() index.Stats { return db.idx.Stats() }

// DumpTree writes the indices held by every node of the current tree.
func (db *DB) DumpTree(w io.Writer) error {
	if db.closed.Load() {
		return ErrClosed
	}
	return db.idx.Dump(w)
}

// AddData appends vs and rebuilds the tree. Either all vectors are added
// or, on a dimension mismatch, none are.
func (db *DB) AddData(ctx context.Context, vs []vector.Vector) error {
	if db.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	prev := db.idx.Generation()

	err := translateError(db.idx.AddData(vs))

	db.metrics.RecordAdd(len(vs), time.Since(start), err)
	db.logger.LogAdd(ctx, len(vs), db.idx.Len(), err)
	db.observeRebuild(ctx, prev, start)

	return err
}

// RemoveData erases, for each of vs, the first exactly equal stored vector
// and rebuilds the tree. It returns how many vectors were erased.
func (db *DB) RemoveData(ctx context.Context, vs []vector.Vector) (int, error) {
	if db.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	prev := db.idx.Generation()

	removed, err := db.idx.RemoveData(vs)
	err = translateError(err)

	db.metrics.RecordRemove(removed, time.Since(start), err)
	db.logger.LogRemove(ctx, len(vs), removed, err)
	db.observeRebuild(ctx, prev, start)

	return removed, err
}

// Rebuild draws a new tree over the stored vectors. For RP trees this
// resamples every projection.
func (db *DB) Rebuild(ctx context.Context) error {
	if db.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	prev := db.idx.Generation()

	if err := db.idx.MakeTree(); err != nil {
		return translateError(err)
	}

	db.observeRebuild(ctx, prev, start)
	return nil
}

func (db *DB) observeRebuild(ctx context.Context, prev uint64, start time.Time) {
	snap := db.idx.Snapshot()
	if snap.Generation() == prev {
		return
	}

	d := time.Since(start)
	db.metrics.RecordRebuild(snap.Len(), d)
	db.logger.LogRebuild(ctx, snap.Generation(), snap.Len(), d)
	db.cache.purge()
}

// Search returns up to k stored vectors nearest to q, closest first.
func (db *DB) Search(ctx context.Context, q vector.Vector, k int) ([]model.SearchResult, error) {
	if db.closed.Load() {
		return nil, ErrClosed
	}

	if err := db.rc.AcquireSearch(ctx); err != nil {
		return nil, err
	}
	defer db.rc.ReleaseSearch()

	start := time.Now()

	snap := db.idx.Snapshot()
	if res, ok := db.cache.get(snap.Generation(), k, q); ok {
		db.metrics.RecordSearch(k, time.Since(start), nil)
		db.logger.LogSearch(ctx, k, len(res), nil)
		return res, nil
	}

	res, err := snap.Search(q, k)
	err = translateError(err)
	if err == nil {
		db.cache.add(snap.Generation(), k, q, res)
	}

	db.metrics.RecordSearch(k, time.Since(start), err)
	db.logger.LogSearch(ctx, k, len(res), err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

// SearchBatch runs Search for every query. Queries are independent and run
// concurrently, bounded by the resource controller when one is configured.
// The first failing query cancels the rest.
func (db *DB) SearchBatch(ctx context.Context, qs []vector.Vector, k int) ([][]model.SearchResult, error) {
	if db.closed.Load() {
		return nil, ErrClosed
	}

	limit := db.rc.SearchConcurrency()
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	out := make([][]model.SearchResult, len(qs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, q := range qs {
		g.Go(func() error {
			res, err := db.Search(gctx, q, k)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ingest loads a CSV blob from store and adds its rows. Compressed blobs
// are recognised by their suffix.
func (db *DB) Ingest(ctx context.Context, store blobstore.BlobStore, name string) (int, error) {
	if db.closed.Load() {
		return 0, ErrClosed
	}

	vs, err := dataset.Load(ctx, store, name, dataset.WithController(db.rc))
	return db.ingested(ctx, name, vs, err)
}

// IngestPrefix loads every blob under prefix in lexical order and adds the
// rows in one rebuild. Nothing is added if any blob fails.
func (db *DB) IngestPrefix(ctx context.Context, store blobstore.BlobStore, prefix string) (int, error) {
	if db.closed.Load() {
		return 0, ErrClosed
	}

	vs, err := dataset.LoadPrefix(ctx, store, prefix, dataset.WithController(db.rc))
	return db.ingested(ctx, prefix, vs, err)
}

func (db *DB) ingested(ctx context.Context, source string, vs []vector.Vector, err error) (int, error) {
	if err == nil {
		err = db.AddData(ctx, vs)
	} else {
		err = translateError(err)
	}

	if err != nil {
		db.logger.LogIngest(ctx, source, 0, err)
		return 0, err
	}

	db.logger.LogIngest(ctx, source, len(vs), nil)
	return len(vs), nil
}

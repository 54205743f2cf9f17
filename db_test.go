package vectree

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vectree/blobstore"
	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/resource"
	"github.com/hupe1980/vectree/testutil"
	"github.com/hupe1980/vectree/vector"
)

func newDBs(t *testing.T, optFns ...Option) map[string]*DB {
	t.Helper()

	dbs := map[string]*DB{}
	for _, kind := range []model.Kind{model.KindKD, model.KindRP} {
		db, err := New(kind, append([]Option{WithSeed(99)}, optFns...)...)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		dbs[kind.String()] = db
	}
	return dbs
}

func TestNew(t *testing.T) {
	t.Run("InvalidLeafSize", func(t *testing.T) {
		_, err := New(model.KindKD, WithLeafSize(0))

		var ls *ErrInvalidLeafSize
		require.ErrorAs(t, err, &ls)
		assert.Equal(t, 0, ls.LeafSize)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := New(model.Kind(42))
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		db, err := New(model.KindRP)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, model.KindRP, db.Kind())
		assert.NotEmpty(t, db.ID())
		assert.Equal(t, 200, db.Stats().LeafSize)
		assert.Equal(t, "max-heap", db.Stats().Policy)
	})
}

func TestDB_Fixture(t *testing.T) {
	ctx := context.Background()

	for name, db := range newDBs(t, WithLeafSize(2)) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.AddData(ctx, []vector.Vector{{0, 0}, {5, 5}, {1, 1}, {9, 9}}))
			assert.Equal(t, 4, db.Len())
			assert.Equal(t, 2, db.Dim())

			res, err := db.Search(ctx, vector.Vector{0, 1}, 1)
			require.NoError(t, err)
			require.Len(t, res, 1)
			assert.Contains(t, []int{0, 2}, res[0].Index)
			assert.InDelta(t, 1.0, res[0].Distance, 1e-12)
		})
	}
}

func TestDB_Errors(t *testing.T) {
	ctx := context.Background()

	for name, db := range newDBs(t) {
		t.Run(name, func(t *testing.T) {
			_, err := db.Search(ctx, vector.Vector{0, 0}, 1)
			assert.ErrorIs(t, err, ErrEmptyIndex)

			require.NoError(t, db.AddData(ctx, []vector.Vector{{0, 0}, {1, 1}}))

			_, err = db.Search(ctx, vector.Vector{0, 0}, 0)
			assert.ErrorIs(t, err, ErrInvalidK)

			_, err = db.Search(ctx, vector.Vector{0, 0, 0}, 1)
			var dm *ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 2, dm.Expected)
			assert.Equal(t, 3, dm.Actual)

			err = db.AddData(ctx, []vector.Vector{{2, 2}, {3}})
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 2, db.Len())
		})
	}
}

func TestDB_AddAndRemove(t *testing.T) {
	ctx := context.Background()

	for name, db := range newDBs(t, WithLeafSize(1)) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.AddData(ctx, []vector.Vector{{0, 0}, {5, 5}, {1, 1}, {9, 9}}))
			gen := db.Generation()

			n, err := db.RemoveData(ctx, []vector.Vector{{5, 5}, {7, 7}})
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, 3, db.Len())
			assert.Greater(t, db.Generation(), gen)

			res, err := db.Search(ctx, vector.Vector{5, 5}, 3)
			require.NoError(t, err)
			require.Len(t, res, 3)
			for _, r := range res {
				assert.NotEqual(t, 0.0, r.Distance)
			}

			gen = db.Generation()
			n, err = db.RemoveData(ctx, []vector.Vector{{7, 7}})
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			assert.Equal(t, gen, db.Generation())

			require.NoError(t, db.AddData(ctx, []vector.Vector{{4, 4}}))
			res, err = db.Search(ctx, vector.Vector{4, 4}, 1)
			require.NoError(t, err)
			assert.Equal(t, 3, res[0].Index)
			assert.Equal(t, 0.0, res[0].Distance)
		})
	}
}

func TestDB_KDMatchesExact(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	rows := rng.UniformVectors(300, 4)

	db, err := New(model.KindKD, WithLeafSize(8))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.AddData(ctx, rows))

	for _, q := range rng.UniformVectors(20, 4) {
		res, err := db.Search(ctx, q, 5)
		require.NoError(t, err)

		truth := testutil.ExactTopK(rows, q, 5)
		require.Len(t, res, len(truth))
		for i := range truth {
			assert.Equal(t, truth[i].Index, res[i].Index)
			assert.InDelta(t, truth[i].Distance, res[i].Distance, 1e-9)
		}
	}
}

func TestDB_SearchBatch(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(11)
	rows := rng.UniformVectors(200, 3)
	queries := rng.UniformVectors(16, 3)

	for name, db := range newDBs(t, WithLeafSize(10), WithSearchConcurrency(4)) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.AddData(ctx, rows))

			batch, err := db.SearchBatch(ctx, queries, 3)
			require.NoError(t, err)
			require.Len(t, batch, len(queries))

			for i, q := range queries {
				single, err := db.Search(ctx, q, 3)
				require.NoError(t, err)
				assert.Equal(t, single, batch[i])
			}

			_, err = db.SearchBatch(ctx, append(queries, vector.Vector{1}), 3)
			var dm *ErrDimensionMismatch
			assert.ErrorAs(t, err, &dm)
		})
	}
}

func TestDB_QueryCache(t *testing.T) {
	ctx := context.Background()

	db, err := New(model.KindKD, WithLeafSize(1), WithQueryCache(8))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AddData(ctx, []vector.Vector{{0}, {2}, {4}}))

	first, err := db.Search(ctx, vector.Vector{1.9}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, db.cache.len())

	first[0].Index = 99
	again, err := db.Search(ctx, vector.Vector{1.9}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Index)

	require.NoError(t, db.AddData(ctx, []vector.Vector{{1.9}}))
	assert.Equal(t, 0, db.cache.len())

	res, err := db.Search(ctx, vector.Vector{1.9}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res[0].Index)
}

func TestDB_Ingest(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, dataset.Save(ctx, store, "train/a.csv", []vector.Vector{{0, 0}, {1, 1}}))
	require.NoError(t, dataset.Save(ctx, store, "train/b.csv.zst", []vector.Vector{{2, 2}}))
	require.NoError(t, store.Put(ctx, "bad.csv", []byte("1,2\n3,x\n")))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	db, err := New(model.KindKD, WithLeafSize(1), WithResourceController(rc))
	require.NoError(t, err)
	defer db.Close()

	n, err := db.Ingest(ctx, store, "train/a.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.IngestPrefix(ctx, store, "train/")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 5, db.Len())

	n, err = db.Ingest(ctx, store, "bad.csv")
	assert.ErrorIs(t, err, ErrMalformedCSV)
	assert.Equal(t, 0, n)
	assert.Equal(t, 5, db.Len())

	_, err = db.Ingest(ctx, store, "missing.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDB_DumpTree(t *testing.T) {
	ctx := context.Background()

	db, err := New(model.KindKD, WithLeafSize(2))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, db.DumpTree(&buf))
	assert.Equal(t, "empty tree\n", buf.String())

	require.NoError(t, db.AddData(ctx, []vector.Vector{{0, 0}, {5, 5}, {1, 1}, {9, 9}}))

	buf.Reset()
	require.NoError(t, db.DumpTree(&buf))
	assert.Contains(t, buf.String(), "indices:")
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), db.Stats().Tree.Nodes)
}

func TestDB_Close(t *testing.T) {
	ctx := context.Background()

	db, err := New(model.KindKD)
	require.NoError(t, err)
	require.NoError(t, db.AddData(ctx, []vector.Vector{{1}}))

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	_, err = db.Search(ctx, vector.Vector{1}, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, db.AddData(ctx, []vector.Vector{{2}}), ErrClosed)
	_, err = db.RemoveData(ctx, []vector.Vector{{1}})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = db.SearchBatch(ctx, []vector.Vector{{1}}, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, db.Rebuild(ctx), ErrClosed)
	assert.ErrorIs(t, db.DumpTree(&bytes.Buffer{}), ErrClosed)
}

func TestDB_CanceledContext(t *testing.T) {
	db, err := New(model.KindKD)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = db.AddData(ctx, []vector.Vector{{1}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, db.Len())
}

func TestDB_Metrics(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}

	db, err := New(model.KindKD, WithLeafSize(1), WithMetricsCollector(mc))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AddData(ctx, []vector.Vector{{0}, {1}, {2}}))
	_, _ = db.Search(ctx, vector.Vector{1}, 2)
	_, _ = db.Search(ctx, vector.Vector{1}, 0)
	_, err = db.RemoveData(ctx, []vector.Vector{{1}})
	require.NoError(t, err)
	require.NoError(t, db.Rebuild(ctx))

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.AddCount)
	assert.Equal(t, int64(3), stats.AddVectors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(1), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.RemovedVectors)
	assert.Equal(t, int64(3), stats.RebuildCount)
}

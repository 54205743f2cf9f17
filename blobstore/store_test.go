package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	ctx := context.Background()

	data := []byte("1.0,2.0\n3.0,4.0\n")
	require.NoError(t, store.Put(ctx, "train/a.csv", data))
	require.NoError(t, store.Put(ctx, "train/b.csv", []byte("5,6\n")))
	require.NoError(t, store.Put(ctx, "test.csv", nil))

	t.Run("Open and ReadAt", func(t *testing.T) {
		blob, err := store.Open(ctx, "train/a.csv")
		require.NoError(t, err)
		defer blob.Close()

		require.Equal(t, int64(len(data)), blob.Size())

		buf := make([]byte, 7)
		n, err := blob.ReadAt(ctx, buf, 8)
		require.NoError(t, err)
		assert.Equal(t, "3.0,4.0", string(buf[:n]))

		n, err = blob.ReadAt(ctx, make([]byte, 10), 12)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 4, n)
	})

	t.Run("ReadRange", func(t *testing.T) {
		blob, err := store.Open(ctx, "train/a.csv")
		require.NoError(t, err)
		defer blob.Close()

		rc, err := blob.ReadRange(ctx, 4, 3)
		require.NoError(t, err)
		defer rc.Close()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "2.0", string(got))
	})

	t.Run("ReadAll", func(t *testing.T) {
		blob, err := store.Open(ctx, "train/a.csv")
		require.NoError(t, err)
		defer blob.Close()

		got, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("empty blob", func(t *testing.T) {
		blob, err := store.Open(ctx, "test.csv")
		require.NoError(t, err)
		defer blob.Close()

		got, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx, "train/")
		require.NoError(t, err)
		assert.Equal(t, []string{"train/a.csv", "train/b.csv"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"test.csv", "train/a.csv", "train/b.csv"}, all)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing.csv")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "train/b.csv", []byte("7,8\n")))
		blob, err := store.Open(ctx, "train/b.csv")
		require.NoError(t, err)
		defer blob.Close()

		got, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, "7,8\n", string(got))
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	testStore(t, NewLocalStore(dir))

	_, err := os.Stat(filepath.Join(dir, "train", "a.csv"))
	require.NoError(t, err)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
}

package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vectree/blobstore"
	"github.com/hupe1980/vectree/resource"
	"github.com/hupe1980/vectree/vector"
)

// Compression is a supported dataset file compression.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
	CompressionLZ4
)

// CompressionFor picks the compression from a file name's suffix.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".gz":
		return CompressionGzip
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

func decompress(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

func compress(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// LoadOptions configures Load and LoadPrefix.
type LoadOptions struct {
	// Controller throttles reads and reserves memory for raw blob bytes.
	Controller *resource.Controller
	// Concurrency bounds parallel blob fetches in LoadPrefix. Default: 4.
	Concurrency int
}

// LoadOption configures Load and LoadPrefix.
type LoadOption func(*LoadOptions)

// WithController applies a resource controller to loading.
func WithController(rc *resource.Controller) LoadOption {
	return func(o *LoadOptions) { o.Controller = rc }
}

// WithConcurrency sets the number of blobs LoadPrefix fetches at once.
func WithConcurrency(n int) LoadOption {
	return func(o *LoadOptions) { o.Concurrency = n }
}

func loadOptions(optFns []LoadOption) LoadOptions {
	opts := LoadOptions{Concurrency: 4}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return opts
}

// Load reads the CSV blob called name, decompressing it according to its
// suffix. On any error no vectors are returned.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...LoadOption) ([]vector.Vector, error) {
	opts := loadOptions(optFns)

	vs, err := load(ctx, store, name, opts)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %q: %w", name, err)
	}
	return vs, nil
}

func load(ctx context.Context, store blobstore.BlobStore, name string, opts LoadOptions) ([]vector.Vector, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	rc := opts.Controller
	if err := rc.AcquireMemory(ctx, blob.Size()); err != nil {
		return nil, err
	}
	defer rc.ReleaseMemory(blob.Size())

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	r, err := decompress(CompressionFor(name), rc.Reader(ctx, raw))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ReadCSV(r)
}

// LoadPrefix loads every blob whose name starts with prefix and concatenates
// them in lexical name order. Blobs are fetched concurrently. Either all rows
// are returned or none.
func LoadPrefix(ctx context.Context, store blobstore.BlobStore, prefix string, optFns ...LoadOption) ([]vector.Vector, error) {
	opts := loadOptions(optFns)

	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("dataset: list %q: %w", prefix, err)
	}

	parts := make([][]vector.Vector, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, name := range names {
		g.Go(func() error {
			vs, err := load(gctx, store, name, opts)
			if err != nil {
				return fmt.Errorf("dataset: load %q: %w", name, err)
			}
			parts[i] = vs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		out []vector.Vector
		dim int
	)
	for i, part := range parts {
		for _, v := range part {
			if dim == 0 {
				dim = v.Dim()
			}
			if v.Dim() != dim {
				return nil, fmt.Errorf("dataset: load %q: %w", names[i],
					&vector.ErrDimensionMismatch{Expected: dim, Actual: v.Dim()})
			}
		}
		out = append(out, part...)
	}

	return out, nil
}

// ReadFile loads a local CSV file, decompressing it according to its suffix.
func ReadFile(ctx context.Context, path string, optFns ...LoadOption) ([]vector.Vector, error) {
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return Load(ctx, store, filepath.Base(path), optFns...)
}

// Encode renders vs as CSV compressed according to name's suffix.
func Encode(name string, vs []vector.Vector) ([]byte, error) {
	var buf bytes.Buffer

	w, err := compress(CompressionFor(name), &buf)
	if err != nil {
		return nil, err
	}
	if err := WriteCSV(w, vs); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save encodes vs and stores them under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, vs []vector.Vector) error {
	data, err := Encode(name, vs)
	if err != nil {
		return fmt.Errorf("dataset: encode %q: %w", name, err)
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("dataset: save %q: %w", name, err)
	}
	return nil
}

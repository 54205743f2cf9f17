package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/vectree/blobstore"
	"github.com/hupe1980/vectree/blobstore/minio"
	"github.com/hupe1980/vectree/blobstore/s3"
)

// Environment variables consulted when opening remote sources.
const (
	EnvS3Endpoint     = "VECTREE_S3_ENDPOINT"
	EnvMinioEndpoint  = "MINIO_ENDPOINT"
	EnvMinioAccessKey = "MINIO_ACCESS_KEY"
	EnvMinioSecretKey = "MINIO_SECRET_KEY"
	EnvMinioSecure    = "MINIO_SECURE"
)

// Source is a dataset location: a blob store and a name within it. When
// Prefix is true, Name selects every blob it prefixes.
type Source struct {
	Store  blobstore.BlobStore
	Name   string
	Prefix bool
}

// OpenSource resolves a local path, a file:// URI or an s3:// or minio://
// URI. A trailing slash marks a prefix.
func OpenSource(ctx context.Context, uri string) (Source, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return openLocal(uri), nil
	}

	if u.Scheme == "file" {
		return openLocal(filepath.FromSlash(u.Path)), nil
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" {
		return Source{}, fmt.Errorf("source %q: missing bucket", uri)
	}

	src := Source{Name: key, Prefix: key == "" || strings.HasSuffix(key, "/")}

	switch u.Scheme {
	case "s3":
		var optFns []s3.Option
		if ep := os.Getenv(EnvS3Endpoint); ep != "" {
			optFns = append(optFns, s3.WithEndpoint(ep))
		}
		store, err := s3.New(ctx, bucket, optFns...)
		if err != nil {
			return Source{}, fmt.Errorf("source %q: %w", uri, err)
		}
		src.Store = store
	case "minio":
		endpoint := os.Getenv(EnvMinioEndpoint)
		if endpoint == "" {
			return Source{}, fmt.Errorf("source %q: %s is not set", uri, EnvMinioEndpoint)
		}
		optFns := []minio.Option{minio.WithSecure(os.Getenv(EnvMinioSecure) == "true")}
		if ak, sk := os.Getenv(EnvMinioAccessKey), os.Getenv(EnvMinioSecretKey); ak != "" {
			optFns = append(optFns, minio.WithStaticCredentials(ak, sk))
		}
		store, err := minio.New(endpoint, bucket, optFns...)
		if err != nil {
			return Source{}, fmt.Errorf("source %q: %w", uri, err)
		}
		src.Store = store
	default:
		return Source{}, fmt.Errorf("source %q: unsupported scheme %q", uri, u.Scheme)
	}

	return src, nil
}

func openLocal(path string) Source {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return Source{Store: blobstore.NewLocalStore(path), Prefix: true}
	}
	return Source{
		Store: blobstore.NewLocalStore(filepath.Dir(path)),
		Name:  filepath.Base(path),
	}
}

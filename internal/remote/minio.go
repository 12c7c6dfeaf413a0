package remote

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"framelab/internal/faults"
)

// MinioConfig holds connection settings for a MinIO-compatible endpoint.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Minio stores dataset trees in a single bucket, one object per file.
type Minio struct {
	client *miniogo.Client
	bucket string
}

// NewMinio connects to the endpoint described by cfg.
func NewMinio(cfg MinioConfig) (*Minio, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "remote", "connect", "endpoint and bucket required", nil)
	}
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Minio{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *Minio) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", m.bucket, err)
		}
	}
	return nil
}

func (m *Minio) Available() bool { return true }

// Push uploads every file beneath localRoot, keyed by its path relative to
// the root joined under prefix.
func (m *Minio) Push(ctx context.Context, localRoot, prefix string) error {
	return filepath.WalkDir(localRoot, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localRoot, filePath)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		if _, err := m.client.FPutObject(ctx, m.bucket, key, filePath, miniogo.PutObjectOptions{}); err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		return nil
	})
}

// Pull downloads every object under prefix into localRoot, recreating the
// relative layout.
func (m *Minio) Pull(ctx context.Context, prefix, localRoot string) error {
	normalized := strings.TrimSuffix(prefix, "/") + "/"
	found := false
	for object := range m.client.ListObjects(ctx, m.bucket, miniogo.ListObjectsOptions{
		Prefix:    normalized,
		Recursive: true,
	}) {
		if object.Err != nil {
			return fmt.Errorf("list objects under %s: %w", normalized, object.Err)
		}
		found = true
		rel := strings.TrimPrefix(object.Key, normalized)
		dest := filepath.Join(localRoot, filepath.FromSlash(rel))
		if err := m.client.FGetObject(ctx, m.bucket, object.Key, dest, miniogo.GetObjectOptions{}); err != nil {
			return fmt.Errorf("download %s: %w", object.Key, err)
		}
	}
	if !found {
		return faults.Wrap(faults.ErrNotFound, "remote", "pull",
			fmt.Sprintf("no objects under %s", normalized), nil)
	}
	return nil
}

package backend

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"template-catalog/core/catalog"
	"template-catalog/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectStore loads template records from an object storage bucket. Folder
// locations map to key prefixes listed recursively; singleton locations map
// to exact object keys.
type ObjectStore struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewObjectStore creates a backend over the given bucket.
func NewObjectStore(client storage.Client, bucket string, logger *zap.Logger) *ObjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// VerifyBucket checks that the content bucket is reachable and exists, so a
// misconfigured deployment fails at boot instead of on the first load.
func (b *ObjectStore) VerifyBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("backend: checking bucket %q: %w", b.bucket, err)
	}
	if !exists {
		return fmt.Errorf("backend: bucket %q does not exist", b.bucket)
	}
	return nil
}

// Load implements catalog.Backend.
func (b *ObjectStore) Load(ctx context.Context, loc catalog.LocationSpec) ([]catalog.Record, error) {
	switch loc.Kind {
	case catalog.LocationFolder:
		return b.loadFolder(ctx, loc.Path)
	case catalog.LocationSingleton:
		return b.loadSingleton(ctx, loc.Path)
	default:
		return nil, fmt.Errorf("backend: cannot load location %s", loc)
	}
}

func (b *ObjectStore) loadFolder(ctx context.Context, prefix string) ([]catalog.Record, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var keys []string
	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("backend: listing %q: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, recordExt) {
			keys = append(keys, obj.Key)
		}
	}
	// Key order is the record order the duplicate-name policy sees; sort to
	// pin it even if a provider returns keys unordered.
	sort.Strings(keys)

	var records []catalog.Record
	for _, key := range keys {
		recs, err := b.readDocument(ctx, key)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (b *ObjectStore) loadSingleton(ctx context.Context, key string) ([]catalog.Record, error) {
	// GetObject streams lazily and only fails on first read; Stat up front
	// distinguishes a missing object from an unreadable one.
	if _, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("backend: stat %q: %w", key, err)
	}
	return b.readDocument(ctx, key)
}

func (b *ObjectStore) readDocument(ctx context.Context, key string) ([]catalog.Record, error) {
	reader, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("backend: get %q: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("backend: read %q: %w", key, err)
	}

	recs, err := ParseDocument(key, data)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("document loaded",
		zap.String("key", key),
		zap.Int("records", len(recs)))
	return recs, nil
}

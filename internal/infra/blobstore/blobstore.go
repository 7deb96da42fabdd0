package blobstore

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kalaconnect-backend/config"
)

// Store wraps the MinIO client behind the two operations this product needs:
// short-lived upload slots and resolving stored object keys into fetchable URLs.
type Store struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

var Blob *Store

// Init connects to MinIO and makes sure the bucket exists. Fatal on failure,
// same as the database package: the service cannot run without its blob store.
func Init() {
	store, err := New(
		config.MINIO_ENDPOINT,
		config.MINIO_ACCESS_KEY,
		config.MINIO_SECRET_KEY,
		config.MINIO_BUCKET,
		config.MINIO_USE_SSL,
		config.MINIO_URL_TTL,
	)
	if err != nil {
		log.Fatal("❌ Failed to init blob store:", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatal("❌ Failed to ensure bucket:", err)
	}
	Blob = store
	fmt.Println("✅ Blob store ready, bucket:", store.bucket)
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool, urlTTL string) (*Store, error) {
	ttl, err := time.ParseDuration(urlTTL)
	if err != nil || ttl <= 0 {
		ttl = 15 * time.Minute
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &Store{client: client, bucket: bucket, urlTTL: ttl}, nil
}

func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// NewUploadSlot returns a fresh object key plus a presigned PUT URL the client
// uploads raw bytes to. The key becomes the opaque file reference stored on
// the craft record.
func (s *Store) NewUploadSlot(ctx context.Context) (key string, uploadURL string, err error) {
	key = uuid.NewString()
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.urlTTL)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return key, u.String(), nil
}

// ResolveURL turns a stored object key into a time-bounded GET URL.
// An empty key resolves to nil, never an error.
func (s *Store) ResolveURL(ctx context.Context, key string) (*string, error) {
	if key == "" {
		return nil, nil
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlTTL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("presign get %s: %w", key, err)
	}
	out := u.String()
	return &out, nil
}

package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/plume-labs/plume/config"
)

// MinioStore keeps post images in a minio bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(cfg config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	key := "posts/" + uuid.New().String() + extFor(contentType)
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

func (s *MinioStore) URLFor(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	return ""
}

package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const postImagesPrefix = "posts"

type ImageStore interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinio(ctx context.Context, cfg config.MinioConfig) (ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &minioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// ObjectName places an upload under posts/ with a random name that keeps the extension.
func ObjectName(filename string) string {
	return postImagesPrefix + "/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
}

func (s *minioStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := ObjectName(filename)
	if _, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}

	return s.publicURL + "/" + s.bucket + "/" + objectName, nil
}

func (s *minioStore) Remove(ctx context.Context, url string) error {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}

	return s.client.RemoveObject(ctx, s.bucket, strings.TrimPrefix(url, prefix), minio.RemoveObjectOptions{})
}

package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignExpiry is the lifetime of returned image URLs (the MinIO maximum).
const presignExpiry = 7 * 24 * time.Hour

type ImageService interface {
	EnsureBucket(ctx context.Context) error
	UploadSweetImage(ctx context.Context, userID string, sweetID int64, filename, contentType string, reader io.Reader, size int64) (string, error)
}

type minioImageService struct {
	client *minio.Client
	bucket string
}

func NewMinioImageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (ImageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioImageService{client: client, bucket: bucket}, nil
}

func (s *minioImageService) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// UploadSweetImage stores the image under an identity-scoped object key and
// returns a presigned GET URL for it.
func (s *minioImageService) UploadSweetImage(ctx context.Context, userID string, sweetID int64, filename, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s/%d/%s%s", userID, sweetID, uuid.NewString(), path.Ext(filename))

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}
	return url.String(), nil
}

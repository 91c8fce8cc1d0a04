// Package storage wraps MinIO for file-type form fields. Uploads never
// pass through the API process: the public endpoint hands the browser a
// short-lived presigned PUT URL and the lead record keeps only the key.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"leadcapture_backend/platform/config"
)

// UploadURLTTL bounds how long a presigned upload URL stays usable.
const UploadURLTTL = 15 * time.Minute

// PresignedUpload is what the public presign endpoint returns to the client.
type PresignedUpload struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Uploads issues presigned URLs for form file uploads.
type Uploads interface {
	PresignUpload(ctx context.Context, formID, fileName, contentType string, sizeBytes int64) (*PresignedUpload, error)
}

// Service implements Uploads on top of a MinIO bucket.
type Service struct {
	client *minio.Client
	bucket string
}

// New connects to MinIO using the storage configuration. It fails when
// storage is not configured; callers that can run without uploads should
// check cfg.IsStorageEnabled() first.
func New(cfg config.StorageConfig) (*Service, error) {
	if !cfg.IsStorageEnabled() {
		return nil, fmt.Errorf("storage is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Service{client: client, bucket: cfg.GetUploadBucket()}, nil
}

// EnsureBucket creates the upload bucket when it does not exist yet.
// Called once at startup.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// PresignUpload returns a presigned PUT URL for one file. Objects are
// keyed per form, with a random suffix so repeated uploads of the same
// file name never overwrite each other.
func (s *Service) PresignUpload(ctx context.Context, formID, fileName, contentType string, sizeBytes int64) (*PresignedUpload, error) {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(path.Base(fileName), ext)
	fileKey := fmt.Sprintf("%s/%s_%s%s", formID, base, uuid.New().String()[:8], ext)

	expiresAt := time.Now().Add(UploadURLTTL)
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, fileKey, UploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	return &PresignedUpload{
		URL:       presigned.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}

// ExtensionAllowed reports whether fileName's extension is in the field's
// accepted-types list. An empty list accepts everything.
func ExtensionAllowed(fileName string, fileTypes []string) bool {
	if len(fileTypes) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	for _, allowed := range fileTypes {
		if strings.ToLower(strings.TrimPrefix(allowed, ".")) == ext {
			return true
		}
	}
	return false
}

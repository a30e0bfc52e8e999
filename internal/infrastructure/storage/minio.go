package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meeting-notes-team/meeting-notes/pkg/config"
)

// MinIOClient wraps MinIO operations for notes and transcript artifacts
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL when MinIO sits behind a reverse proxy
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when it does not exist yet
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// UploadNotes uploads a rendered notes document and returns its object key
func (m *MinIOClient) UploadNotes(ctx context.Context, meetingID uuid.UUID, markdown string) (string, error) {
	objectName := fmt.Sprintf("notes/%s/%s.md", meetingID, time.Now().UTC().Format("20060102-150405"))
	reader := bytes.NewReader([]byte(markdown))
	if err := m.UploadFile(ctx, objectName, reader, int64(len(markdown)), "text/markdown"); err != nil {
		return "", err
	}
	return objectName, nil
}

// UploadTranscript uploads a speaker-labelled transcript and returns its object key
func (m *MinIOClient) UploadTranscript(ctx context.Context, meetingID uuid.UUID, text string) (string, error) {
	objectName := fmt.Sprintf("transcripts/%s/%s.txt", meetingID, time.Now().UTC().Format("20060102-150405"))
	reader := bytes.NewReader([]byte(text))
	if err := m.UploadFile(ctx, objectName, reader, int64(len(text)), "text/plain"); err != nil {
		return "", err
	}
	return objectName, nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// When MinIO sits behind a reverse proxy, swap the internal endpoint
	// for the public one while keeping path and query.
	if m.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host)
		if bucketPos < len(urlStr) {
			return m.publicURL + urlStr[bucketPos:], nil
		}
	}

	return url.String(), nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/resumeinsight/backend/config"
)

const uploadPrefix = "uploads"

// CloudStorageStore keeps uploads in a Google Cloud Storage bucket
type CloudStorageStore struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageStore creates a new Cloud Storage backed store
func NewCloudStorageStore(ctx context.Context, cfg *config.Config) (*CloudStorageStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageStore{
		client:     client,
		bucketName: cfg.UploadBucket,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageStore) Close() error {
	return c.client.Close()
}

// Save uploads the document to the bucket
func (c *CloudStorageStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	objectName := objectKey(uploadPrefix, filename)

	wc := c.client.Bucket(c.bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write content: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return objectName, nil
}

// Open downloads a stored document
func (c *CloudStorageStore) Open(ctx context.Context, key string) ([]byte, error) {
	rc, err := c.client.Bucket(c.bucketName).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// Delete removes a stored document
func (c *CloudStorageStore) Delete(ctx context.Context, key string) error {
	err := c.client.Bucket(c.bucketName).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

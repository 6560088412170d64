package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage implements the Storage interface for Google Cloud Storage
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	// Create a client
	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: strings.Trim(objectPrefix, "/"),
	}, nil
}

func (s *GCSStorage) objectName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if s.objectPrefix != "" {
		return path.Join(s.objectPrefix, name)
	}
	return name
}

// Location returns the gs:// URL of name
func (s *GCSStorage) Location(name string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.objectName(name))
}

// GetReader returns a reader for an object
func (s *GCSStorage) GetReader(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.Bucket(s.bucket).Object(s.objectName(name)).NewReader(ctx)
}

// GetWriter returns a writer for an object. GCS only creates the object
// when the writer is closed, so partial output never becomes visible.
func (s *GCSStorage) GetWriter(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.client.Bucket(s.bucket).Object(s.objectName(name)).NewWriter(ctx), nil
}

// FileExists checks if an object exists
func (s *GCSStorage) FileExists(ctx context.Context, name string) bool {
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(name)).Attrs(ctx)
	return err == nil
}

// Remove deletes an object
func (s *GCSStorage) Remove(ctx context.Context, name string) error {
	if err := s.client.Bucket(s.bucket).Object(s.objectName(name)).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.Location(name), err)
	}
	return nil
}

// ListFiles lists objects under dir
func (s *GCSStorage) ListFiles(ctx context.Context, dir string) ([]string, error) {
	prefix := s.objectName(dir)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{
		Prefix: prefix,
	})

	var results []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}

		// Skip directories (objects ending with /)
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		results = append(results, path.Join(dir, strings.TrimPrefix(attrs.Name, prefix)))
	}

	return results, nil
}

// Close closes the GCS client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

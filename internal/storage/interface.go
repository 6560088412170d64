package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/jaki95/music-bingo/config"
)

// Storage defines where the files of a generated game are written and read
// back. Names are slash-separated paths relative to the storage root, such as
// "24-05-17/ticketTracks".
type Storage interface {
	// GetWriter returns a writer for name. The file is only visible once the
	// writer has been closed without error.
	GetWriter(ctx context.Context, name string) (io.WriteCloser, error)

	GetReader(ctx context.Context, name string) (io.ReadCloser, error)

	FileExists(ctx context.Context, name string) bool

	Remove(ctx context.Context, name string) error

	// ListFiles lists the files under dir, returned as names relative to the root.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// Location describes where name lives, for messages to the user.
	Location(name string) string

	Close() error
}

const (
	TypeLocal = "local"
	TypeGCS   = "gcs"
)

// New creates the storage selected in the configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalFileStorage(cfg.OutputDir)
	case TypeGCS:
		if cfg.GCS.Bucket == "" {
			return nil, fmt.Errorf("gcs storage requires a bucket")
		}
		return NewGCSStorage(ctx, cfg.GCS.Bucket, cfg.GCS.Prefix, cfg.GCS.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

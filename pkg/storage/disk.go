// Package storage stores product images on a blob backend.
//
// Two drivers are available:
//   - "s3"    S3-compatible object storage (AWS S3, MinIO, R2)
//   - "local" local filesystem, for development
//
//	disk, err := storage.New(ctx, cfg)
//	url, err := disk.Put(ctx, "products/"+id, data, "image/png")
package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/catalog/config"
)

// Disk is the blob storage port.
type Disk interface {
	// Put writes content under key and returns its public URL.
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}

// New builds the disk selected by STORAGE_DISK.
func New(ctx context.Context, cfg *config.Config) (Disk, error) {
	switch cfg.StorageDisk {
	case config.DiskS3:
		return NewS3(ctx, cfg.S3)
	case config.DiskLocal:
		return NewLocal(cfg.StorageLocalRoot, cfg.StorageURL)
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q", cfg.StorageDisk)
	}
}

// Package storage archives CSV export snapshots, either to a local
// directory or an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"strings"

	"edintake/internal/config"
)

const (
	// TypeLocal keeps snapshots on the local filesystem.
	TypeLocal = "local"
	// TypeS3 uploads snapshots to Amazon S3 or a compatible backend.
	TypeS3 = "s3"
)

// Archive persists an export snapshot and returns a backend-specific
// identifier (a relative path or object key).
type Archive interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// NewArchive instantiates the archive backend from configuration.
func NewArchive(cfg config.Config) (Archive, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalArchive(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Archive(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
